package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	StatusLead      LeadStatus = "LEAD"
	StatusQualified LeadStatus = "QUALIFIED"
	StatusProposal  LeadStatus = "PROPOSAL"
	StatusClosed    LeadStatus = "CLOSED"
	StatusDiscarded LeadStatus = "DISCARDED"
)

// Pipeline order. Any status may move to any other; the order only matters
// for presentation.
var AllStatuses = []LeadStatus{
	StatusLead,
	StatusQualified,
	StatusProposal,
	StatusClosed,
	StatusDiscarded,
}

func (s LeadStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func ParseLeadStatus(raw string) (LeadStatus, error) {
	s := LeadStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid lead status %q", raw)
	}
	return s, nil
}

// Lead origin.
const (
	SourceSite   = "SITE"
	SourceImport = "IMPORT"
	SourceManual = "MANUAL"
)

// Entidade: Lead (bar/restaurante interessado no plano)
type Lead struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone,omitempty"`
	Email             string     `json:"email,omitempty"`
	City              string     `json:"city,omitempty"`
	EstablishmentType string     `json:"establishment_type,omitempty"`
	EmployeeBracket   string     `json:"employee_bracket,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Status            LeadStatus `json:"status"`
	Salesperson       string     `json:"salesperson,omitempty"`
	Source            string     `json:"source"`

	// Reserva (claim exclusivo com janela de 48h)
	ReservedBy           string     `json:"reserved_by,omitempty"`
	ReservedAt           *time.Time `json:"reserved_at,omitempty"`
	ReservationExpiresAt *time.Time `json:"reservation_expires_at,omitempty"`

	// Score calculado externamente (0-100)
	Score          *int       `json:"score,omitempty"`
	ScoreUpdatedAt *time.Time `json:"score_updated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, phone, email, city, establishmentType, source string) (*Lead, error) {
	lead := &Lead{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(name),
		Phone:             strings.TrimSpace(phone),
		Email:             strings.TrimSpace(email),
		City:              strings.TrimSpace(city),
		EstablishmentType: strings.TrimSpace(establishmentType),
		Status:            StatusLead,
		Source:            source,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Phone == "" && l.Email == "" {
		return errors.New("phone or email is required")
	}
	if !l.Status.Valid() {
		return fmt.Errorf("invalid lead status %q", l.Status)
	}
	return nil
}

// LeadFilter narrows List queries. Zero values mean "no filter".
type LeadFilter struct {
	Status      LeadStatus
	Salesperson string
	City        string
	Search      string // matches name, email or phone
	Limit       int
	Offset      int
	SortBy      string // created_at, updated_at, name, score
	SortDesc    bool
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	BulkCreate(ctx context.Context, leads []*Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, int, error)
	Update(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	UpdateScore(ctx context.Context, id string, score int, at time.Time) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	// Claim is a conditional write: it only succeeds while the lead has no
	// live reservation. Returns false when another salesperson won the race.
	Claim(ctx context.Context, id, salesperson string, reservedAt, expiresAt time.Time) (bool, error)
	ClearReservation(ctx context.Context, id string) error
}
