package usecase

import (
	"fmt"
	"time"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type Urgency string

const (
	UrgencyNone     Urgency = "NONE"
	UrgencyUrgent   Urgency = "URGENT"   // under 30 minutes left
	UrgencyCritical Urgency = "CRITICAL" // under 5 minutes left
)

// FormatRemaining renders a positive remaining duration as hours+minutes
// for the primary lead view, e.g. "47h 59m".
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "Expirado"
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

// FormatCompact is the list-view variant: "Xh Ym" or "Expirado".
func FormatCompact(remaining time.Duration) string {
	if remaining <= 0 {
		return "Expirado"
	}
	return fmt.Sprintf("%dh %dm", int(remaining.Hours()), int(remaining.Minutes())%60)
}

// Cosmetic urgency thresholds; no behavior hangs off them.
func ClassifyUrgency(remaining time.Duration) Urgency {
	switch {
	case remaining <= 0:
		return UrgencyNone
	case remaining < 5*time.Minute:
		return UrgencyCritical
	case remaining < 30*time.Minute:
		return UrgencyUrgent
	default:
		return UrgencyNone
	}
}

// BuildReservationView computes the reservation block for a lead as seen by
// the acting salesperson at a given instant.
func BuildReservationView(lead *entity.Lead, acting string, now time.Time) ReservationView {
	state := entity.EvaluateReservation(lead, acting, now)

	view := ReservationView{State: state}
	if state == entity.ReservationAvailable {
		return view
	}

	view.ReservedBy = lead.ReservedBy
	view.ReservedAt = lead.ReservedAt
	view.ExpiresAt = lead.ReservationExpiresAt

	// Indefinite hold: no expiry, no countdown.
	if lead.ReservationExpiresAt == nil {
		return view
	}

	remaining := lead.ReservationExpiresAt.Sub(now)
	view.Remaining = FormatRemaining(remaining)
	view.RemainingCompact = FormatCompact(remaining)
	view.Urgency = ClassifyUrgency(remaining)
	return view
}
