package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func futureTime(now time.Time, d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

// Unreserved leads are available to everyone.
func TestEvaluateReservationUnreserved(t *testing.T) {
	now := time.Now()
	lead := &Lead{ID: "l1", ReservedBy: ""}

	assert.Equal(t, ReservationAvailable, EvaluateReservation(lead, "salesA", now))
	assert.Equal(t, ReservationAvailable, EvaluateReservation(lead, "salesB", now))
}

func TestEvaluateReservationMineAndClaimedByOther(t *testing.T) {
	now := time.Now()
	lead := &Lead{
		ID:                   "l2",
		ReservedBy:           "salesA",
		ReservedAt:           futureTime(now, -time.Hour),
		ReservationExpiresAt: futureTime(now, 2*time.Hour),
	}

	assert.Equal(t, ReservationMine, EvaluateReservation(lead, "salesA", now))
	assert.Equal(t, ReservationClaimedByOther, EvaluateReservation(lead, "salesB", now))
}

// A reservation past its expiry is treated as absent, no matter who held it.
func TestEvaluateReservationExpired(t *testing.T) {
	now := time.Now()
	lead := &Lead{
		ID:                   "l3",
		ReservedBy:           "salesA",
		ReservedAt:           futureTime(now, -49*time.Hour),
		ReservationExpiresAt: futureTime(now, -time.Hour),
	}

	assert.Equal(t, ReservationAvailable, EvaluateReservation(lead, "salesA", now))
	assert.Equal(t, ReservationAvailable, EvaluateReservation(lead, "salesB", now))
}

// An expiry exactly at now counts as expired: remaining time is zero.
func TestEvaluateReservationExpiryBoundary(t *testing.T) {
	now := time.Now()
	lead := &Lead{
		ID:                   "l4",
		ReservedBy:           "salesA",
		ReservationExpiresAt: &now,
	}

	assert.Equal(t, ReservationAvailable, EvaluateReservation(lead, "salesB", now))
}

// Legacy records: holder set but no expiry. These never expire.
func TestEvaluateReservationIndefiniteHold(t *testing.T) {
	now := time.Now()
	lead := &Lead{ID: "l5", ReservedBy: "salesA"}

	assert.Equal(t, ReservationMine, EvaluateReservation(lead, "salesA", now))
	assert.Equal(t, ReservationClaimedByOther, EvaluateReservation(lead, "salesB", now))

	// Even far in the future it still holds.
	later := now.Add(365 * 24 * time.Hour)
	assert.Equal(t, ReservationClaimedByOther, EvaluateReservation(lead, "salesB", later))
}

func TestLatestChangeAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []*StatusChangeRecord{
		{LeadID: "l1", Status: StatusProposal, ChangedAt: base},
		{LeadID: "l1", Status: StatusProposal, ChangedAt: base.Add(48 * time.Hour)},
		{LeadID: "l1", Status: StatusQualified, ChangedAt: base.Add(72 * time.Hour)},
		{LeadID: "l2", Status: StatusProposal, ChangedAt: base.Add(96 * time.Hour)},
	}

	latest := LatestChangeAt(records, "l1", StatusProposal)
	assert.NotNil(t, latest)
	assert.Equal(t, base.Add(48*time.Hour), latest.ChangedAt)

	assert.Nil(t, LatestChangeAt(records, "l1", StatusClosed))
	assert.Nil(t, LatestChangeAt(records, "l3", StatusProposal))
}

func TestParseLeadStatus(t *testing.T) {
	s, err := ParseLeadStatus(" proposal ")
	assert.NoError(t, err)
	assert.Equal(t, StatusProposal, s)

	_, err = ParseLeadStatus("BANANA")
	assert.Error(t, err)
}
