package entity

import "time"

// ReservationWindow is how long an exclusive claim on a lead lasts.
const ReservationWindow = 48 * time.Hour

type ReservationState string

const (
	ReservationAvailable      ReservationState = "AVAILABLE"
	ReservationMine           ReservationState = "MINE"
	ReservationClaimedByOther ReservationState = "CLAIMED_BY_OTHER"
)

// ReservationExpired reports whether a stored expiry timestamp is past.
// A reservation with a holder but no expiry never expires (legacy records
// written before the 48h window existed).
func ReservationExpired(lead *Lead, now time.Time) bool {
	if lead.ReservedBy == "" {
		return true
	}
	if lead.ReservationExpiresAt == nil {
		return false
	}
	return !lead.ReservationExpiresAt.After(now)
}

// EvaluateReservation computes the reservation state of a lead as seen by
// the acting salesperson. Expiry is computed here, at read time; the stored
// fields are never trusted on their own.
func EvaluateReservation(lead *Lead, actingSalesperson string, now time.Time) ReservationState {
	if lead.ReservedBy == "" {
		return ReservationAvailable
	}
	if ReservationExpired(lead, now) {
		return ReservationAvailable
	}
	if lead.ReservedBy == actingSalesperson {
		return ReservationMine
	}
	return ReservationClaimedByOther
}
