package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "47h 59m", usecase.FormatRemaining(47*time.Hour+59*time.Minute))
	assert.Equal(t, "2h 05m", usecase.FormatRemaining(2*time.Hour+5*time.Minute))
	assert.Equal(t, "0h 01m", usecase.FormatRemaining(90*time.Second))
	assert.Equal(t, "Expirado", usecase.FormatRemaining(0))
	assert.Equal(t, "Expirado", usecase.FormatRemaining(-time.Minute))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "47h 59m", usecase.FormatCompact(47*time.Hour+59*time.Minute))
	assert.Equal(t, "2h 5m", usecase.FormatCompact(2*time.Hour+5*time.Minute))
	assert.Equal(t, "Expirado", usecase.FormatCompact(-time.Second))
}

func TestClassifyUrgency(t *testing.T) {
	assert.Equal(t, usecase.UrgencyNone, usecase.ClassifyUrgency(2*time.Hour))
	assert.Equal(t, usecase.UrgencyUrgent, usecase.ClassifyUrgency(29*time.Minute))
	assert.Equal(t, usecase.UrgencyCritical, usecase.ClassifyUrgency(4*time.Minute))
	assert.Equal(t, usecase.UrgencyNone, usecase.ClassifyUrgency(0))
}

// TestBuildReservationViewMine - visão do próprio detentor com contagem regressiva
func TestBuildReservationViewMine(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reservedAt := now.Add(-1 * time.Hour)
	expiresAt := reservedAt.Add(48 * time.Hour)

	lead := &entity.Lead{
		ID:                   "lead-1",
		Name:                 "Bar do Zé",
		Status:               entity.StatusLead,
		ReservedBy:           "ana@barsaude.com.br",
		ReservedAt:           &reservedAt,
		ReservationExpiresAt: &expiresAt,
	}

	view := usecase.BuildReservationView(lead, "ana@barsaude.com.br", now)

	assert.Equal(t, entity.ReservationMine, view.State)
	assert.Equal(t, "ana@barsaude.com.br", view.ReservedBy)
	assert.Equal(t, "47h 00m", view.Remaining)
	assert.Equal(t, "47h 0m", view.RemainingCompact)
	assert.Equal(t, usecase.UrgencyNone, view.Urgency)
}

// TestBuildReservationViewClaimedByOther
func TestBuildReservationViewClaimedByOther(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reservedAt := now.Add(-47*time.Hour - 40*time.Minute)
	expiresAt := reservedAt.Add(48 * time.Hour)

	lead := &entity.Lead{
		ID:                   "lead-1",
		Name:                 "Bar do Zé",
		Status:               entity.StatusLead,
		ReservedBy:           "bruno@barsaude.com.br",
		ReservedAt:           &reservedAt,
		ReservationExpiresAt: &expiresAt,
	}

	view := usecase.BuildReservationView(lead, "ana@barsaude.com.br", now)

	assert.Equal(t, entity.ReservationClaimedByOther, view.State)
	assert.Equal(t, "0h 20m", view.Remaining)
	assert.Equal(t, usecase.UrgencyUrgent, view.Urgency)
}

// TestBuildReservationViewExpired - reserva vencida aparece como disponível, sem resto de contagem
func TestBuildReservationViewExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reservedAt := now.Add(-50 * time.Hour)
	expiresAt := reservedAt.Add(48 * time.Hour)

	lead := &entity.Lead{
		ID:                   "lead-1",
		Name:                 "Bar do Zé",
		Status:               entity.StatusLead,
		ReservedBy:           "bruno@barsaude.com.br",
		ReservedAt:           &reservedAt,
		ReservationExpiresAt: &expiresAt,
	}

	view := usecase.BuildReservationView(lead, "ana@barsaude.com.br", now)

	assert.Equal(t, entity.ReservationAvailable, view.State)
	assert.Empty(t, view.ReservedBy)
	assert.Empty(t, view.Remaining)
}

// TestBuildReservationViewIndefiniteHold - reserva sem vencimento nunca expira e não tem contagem
func TestBuildReservationViewIndefiniteHold(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reservedAt := now.Add(-500 * time.Hour)

	lead := &entity.Lead{
		ID:         "lead-1",
		Name:       "Bar do Zé",
		Status:     entity.StatusLead,
		ReservedBy: "bruno@barsaude.com.br",
		ReservedAt: &reservedAt,
	}

	view := usecase.BuildReservationView(lead, "ana@barsaude.com.br", now)

	assert.Equal(t, entity.ReservationClaimedByOther, view.State)
	assert.Equal(t, "bruno@barsaude.com.br", view.ReservedBy)
	assert.Empty(t, view.Remaining)
	assert.Nil(t, view.ExpiresAt)
}
