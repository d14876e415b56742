package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, phone, email, city, establishment_type, employee_bracket,
	notes, status, salesperson, source, reserved_by, reserved_at,
	reservation_expires_at, score, score_updated_at, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, email, city, establishment_type,
			employee_bracket, notes, status, salesperson, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.Email),
		nullString(lead.City),
		nullString(lead.EstablishmentType),
		nullString(lead.EmployeeBracket),
		nullString(lead.Notes),
		string(lead.Status),
		nullString(lead.Salesperson),
		lead.Source,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	return err
}

func (r *LeadRepository) BulkCreate(ctx context.Context, leads []*entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (id, name, phone, email, city, establishment_type,
			employee_bracket, notes, status, salesperson, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, lead := range leads {
		_, err := stmt.ExecContext(ctx,
			lead.ID, lead.Name, nullString(lead.Phone), nullString(lead.Email),
			nullString(lead.City), nullString(lead.EstablishmentType),
			nullString(lead.EmployeeBracket), nullString(lead.Notes),
			string(lead.Status), nullString(lead.Salesperson), lead.Source,
			lead.CreatedAt, lead.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.Salesperson != "" {
		conditions = append(conditions, "salesperson = "+arg(filter.Salesperson))
	}
	if filter.City != "" {
		conditions = append(conditions, "city ILIKE "+arg(filter.City))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s OR phone ILIKE %s)", p, p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM leads%s ORDER BY %s", leadColumns, where, orderBy(filter))
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}

	return leads, total, rows.Err()
}

// orderBy whitelists sortable columns; anything else falls back to
// created_at.
func orderBy(filter entity.LeadFilter) string {
	col := "created_at"
	switch filter.SortBy {
	case "updated_at", "name", "score", "status", "city":
		col = filter.SortBy
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	return col + " " + dir
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, phone = $3, email = $4, city = $5,
			establishment_type = $6, employee_bracket = $7, notes = $8,
			salesperson = $9, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, nullString(lead.Phone), nullString(lead.Email),
		nullString(lead.City), nullString(lead.EstablishmentType),
		nullString(lead.EmployeeBracket), nullString(lead.Notes),
		nullString(lead.Salesperson),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) UpdateScore(ctx context.Context, id string, score int, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET score = $2, score_updated_at = $3, updated_at = NOW() WHERE id = $1`,
		id, score, at,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Claim only succeeds while no live reservation exists: either the holder
// is empty or the stored expiry has passed. Two racing claims cannot both
// win.
func (r *LeadRepository) Claim(ctx context.Context, id, salesperson string, reservedAt, expiresAt time.Time) (bool, error) {
	query := `
		UPDATE leads SET
			reserved_by = $2,
			reserved_at = $3,
			reservation_expires_at = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND (reserved_by IS NULL
		       OR (reservation_expires_at IS NOT NULL AND reservation_expires_at <= $3))
	`

	res, err := r.DB.ExecContext(ctx, query, id, salesperson, reservedAt, expiresAt)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *LeadRepository) ClearReservation(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE leads SET
			reserved_by = NULL,
			reserved_at = NULL,
			reservation_expires_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var phone, email, city, estType, bracket, notes, salesperson, reservedBy sql.NullString
	var reservedAt, expiresAt, scoreUpdatedAt sql.NullTime
	var score sql.NullInt64
	var status string

	err := row.Scan(
		&lead.ID, &lead.Name, &phone, &email, &city, &estType, &bracket,
		&notes, &status, &salesperson, &lead.Source, &reservedBy, &reservedAt,
		&expiresAt, &score, &scoreUpdatedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Phone = phone.String
	lead.Email = email.String
	lead.City = city.String
	lead.EstablishmentType = estType.String
	lead.EmployeeBracket = bracket.String
	lead.Notes = notes.String
	lead.Status = entity.LeadStatus(status)
	lead.Salesperson = salesperson.String
	lead.ReservedBy = reservedBy.String
	if reservedAt.Valid {
		lead.ReservedAt = &reservedAt.Time
	}
	if expiresAt.Valid {
		lead.ReservationExpiresAt = &expiresAt.Time
	}
	if score.Valid {
		s := int(score.Int64)
		lead.Score = &s
	}
	if scoreUpdatedAt.Valid {
		lead.ScoreUpdatedAt = &scoreUpdatedAt.Time
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
