package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type SentReminderRepository struct {
	DB *sql.DB
}

func NewSentReminderRepository(db *sql.DB) *SentReminderRepository {
	return &SentReminderRepository{DB: db}
}

func (r *SentReminderRepository) Create(ctx context.Context, rem *entity.SentReminder) error {
	if rem.ID == "" {
		rem.ID = uuid.New().String()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sent_reminders (id, lead_id, rule_id, channel, sent_at,
			success, error_message, message_body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		rem.ID, rem.LeadID, rem.RuleID, string(rem.Channel), rem.SentAt,
		rem.Success, nullString(rem.ErrorMessage), nullString(rem.MessageBody),
	)

	if err != nil {
		// (lead_id, rule_id) is unique: two scanner instances racing on the
		// same pair resolve here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrDuplicateReminder
		}
		return err
	}

	return nil
}

func (r *SentReminderRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.SentReminder, error) {
	return r.query(ctx, `
		SELECT id, lead_id, rule_id, channel, sent_at, success, error_message, message_body
		FROM sent_reminders
		WHERE lead_id = $1
		ORDER BY sent_at DESC
	`, leadID)
}

func (r *SentReminderRepository) ListAll(ctx context.Context) ([]*entity.SentReminder, error) {
	return r.query(ctx, `
		SELECT id, lead_id, rule_id, channel, sent_at, success, error_message, message_body
		FROM sent_reminders
	`)
}

func (r *SentReminderRepository) query(ctx context.Context, query string, args ...any) ([]*entity.SentReminder, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*entity.SentReminder
	for rows.Next() {
		var rem entity.SentReminder
		var channel string
		var errMsg, body sql.NullString

		if err := rows.Scan(&rem.ID, &rem.LeadID, &rem.RuleID, &channel,
			&rem.SentAt, &rem.Success, &errMsg, &body); err != nil {
			return nil, err
		}
		rem.Channel = entity.Channel(channel)
		rem.ErrorMessage = errMsg.String
		rem.MessageBody = body.String
		reminders = append(reminders, &rem)
	}

	return reminders, rows.Err()
}
