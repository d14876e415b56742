package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type StatusChangeRepository struct {
	DB *sql.DB
}

func NewStatusChangeRepository(db *sql.DB) *StatusChangeRepository {
	return &StatusChangeRepository{DB: db}
}

func (r *StatusChangeRepository) Create(ctx context.Context, rec *entity.StatusChangeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO status_changes (id, lead_id, status, salesperson, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.LeadID, string(rec.Status), nullString(rec.Salesperson), rec.ChangedAt)

	return err
}

func (r *StatusChangeRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.StatusChangeRecord, error) {
	return r.query(ctx, `
		SELECT id, lead_id, status, salesperson, changed_at
		FROM status_changes
		WHERE lead_id = $1
		ORDER BY changed_at DESC
	`, leadID)
}

func (r *StatusChangeRepository) ListAll(ctx context.Context) ([]*entity.StatusChangeRecord, error) {
	return r.query(ctx, `
		SELECT id, lead_id, status, salesperson, changed_at
		FROM status_changes
		ORDER BY changed_at DESC
	`)
}

func (r *StatusChangeRepository) query(ctx context.Context, query string, args ...any) ([]*entity.StatusChangeRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.StatusChangeRecord
	for rows.Next() {
		var rec entity.StatusChangeRecord
		var salesperson sql.NullString
		var status string

		if err := rows.Scan(&rec.ID, &rec.LeadID, &status, &salesperson, &rec.ChangedAt); err != nil {
			return nil, err
		}
		rec.Status = entity.LeadStatus(status)
		rec.Salesperson = salesperson.String
		records = append(records, &rec)
	}

	return records, rows.Err()
}
