package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type AutomationRuleRepository struct {
	DB *sql.DB
}

func NewAutomationRuleRepository(db *sql.DB) *AutomationRuleRepository {
	return &AutomationRuleRepository{DB: db}
}

const ruleColumns = `id, name, trigger_status, day_offset, channel, script_key, custom_text, enabled, created_at, updated_at`

func (r *AutomationRuleRepository) Create(ctx context.Context, rule *entity.AutomationRule) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO automation_rules (id, name, trigger_status, day_offset,
			channel, script_key, custom_text, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		rule.ID, rule.Name, string(rule.TriggerStatus), rule.DayOffset,
		string(rule.Channel), nullString(rule.ScriptKey), nullString(rule.CustomText),
		rule.Enabled, rule.CreatedAt, rule.UpdatedAt,
	)
	return err
}

func (r *AutomationRuleRepository) Update(ctx context.Context, rule *entity.AutomationRule) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE automation_rules SET
			name = $2, trigger_status = $3, day_offset = $4, channel = $5,
			script_key = $6, custom_text = $7, enabled = $8, updated_at = NOW()
		WHERE id = $1
	`,
		rule.ID, rule.Name, string(rule.TriggerStatus), rule.DayOffset,
		string(rule.Channel), nullString(rule.ScriptKey), nullString(rule.CustomText),
		rule.Enabled,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrRuleNotFound
	}
	return nil
}

func (r *AutomationRuleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM automation_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrRuleNotFound
	}
	return nil
}

func (r *AutomationRuleRepository) FindByID(ctx context.Context, id string) (*entity.AutomationRule, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM automation_rules WHERE id = $1`, id)

	rule, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, entity.ErrRuleNotFound
	}
	return rule, err
}

func (r *AutomationRuleRepository) List(ctx context.Context, onlyEnabled bool) ([]*entity.AutomationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules`
	if onlyEnabled {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*entity.AutomationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func scanRule(row rowScanner) (*entity.AutomationRule, error) {
	var rule entity.AutomationRule
	var trigger, channel string
	var scriptKey, customText sql.NullString

	err := row.Scan(
		&rule.ID, &rule.Name, &trigger, &rule.DayOffset, &channel,
		&scriptKey, &customText, &rule.Enabled, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.TriggerStatus = entity.LeadStatus(trigger)
	rule.Channel = entity.Channel(channel)
	rule.ScriptKey = scriptKey.String
	rule.CustomText = customText.String
	return &rule, nil
}
