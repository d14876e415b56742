package usecase

import (
	"time"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type CreateLeadInput struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	City              string `json:"city"`
	EstablishmentType string `json:"establishment_type"`
	EmployeeBracket   string `json:"employee_bracket"`
	Notes             string `json:"notes"`
	Salesperson       string `json:"salesperson"`
	Source            string `json:"-"`
}

type UpdateLeadInput struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	City              string `json:"city"`
	EstablishmentType string `json:"establishment_type"`
	EmployeeBracket   string `json:"employee_bracket"`
	Notes             string `json:"notes"`
	Salesperson       string `json:"salesperson"`
}

// ReservationView is the computed reservation block rendered into the lead
// detail response. Clients poll it; the countdown strings are recomputed on
// every read.
type ReservationView struct {
	State            entity.ReservationState `json:"state"`
	ReservedBy       string                  `json:"reserved_by,omitempty"`
	ReservedAt       *time.Time              `json:"reserved_at,omitempty"`
	ExpiresAt        *time.Time              `json:"expires_at,omitempty"`
	Remaining        string                  `json:"remaining,omitempty"`
	RemainingCompact string                  `json:"remaining_compact,omitempty"`
	Urgency          Urgency                 `json:"urgency,omitempty"`
}

type ImportReport struct {
	Queued  int      `json:"queued"`
	Skipped []string `json:"skipped,omitempty"`
}

// ScanReport summarizes one follow-up scanner tick.
type ScanReport struct {
	Evaluated  int `json:"evaluated"`
	Dispatched int `json:"dispatched"`
	Failed     int `json:"failed"`
	Prepared   int `json:"prepared"`
}
