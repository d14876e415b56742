package usecase

import (
	"context"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

// ReserveLeadUseCase implements the time-boxed exclusive claim on a lead.
// The claim itself is a conditional write in the repository, so two
// salespeople racing for the same lead cannot both win.
type ReserveLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
	Clock Clock
}

func NewReserveLeadUseCase(leads entity.LeadRepositoryInterface, clock Clock) *ReserveLeadUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReserveLeadUseCase{Leads: leads, Clock: clock}
}

// Claim reserves the lead for the acting salesperson for exactly 48 hours.
func (uc *ReserveLeadUseCase) Claim(ctx context.Context, leadID string, actor entity.Identity) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			return nil, NewDomainError(CodeLeadNotFound, "lead %s not found", leadID)
		}
		return nil, NewPersistenceError("find lead", err)
	}

	now := uc.Clock.Now()
	switch entity.EvaluateReservation(lead, actor.Email, now) {
	case entity.ReservationMine:
		return nil, NewDomainError(CodeLeadReserved, "lead is already reserved by you")
	case entity.ReservationClaimedByOther:
		return nil, NewDomainError(CodeLeadReserved, "lead is reserved by %s", lead.ReservedBy)
	}

	reservedAt := now
	expiresAt := reservedAt.Add(entity.ReservationWindow)

	claimed, err := uc.Leads.Claim(ctx, leadID, actor.Email, reservedAt, expiresAt)
	if err != nil {
		return nil, NewPersistenceError("claim lead", err)
	}
	if !claimed {
		// Someone else got there between our read and the conditional write.
		return nil, NewDomainError(CodeLeadReserved, "lead was reserved by another salesperson")
	}

	lead.ReservedBy = actor.Email
	lead.ReservedAt = &reservedAt
	lead.ReservationExpiresAt = &expiresAt
	return lead, nil
}

// Release clears the reservation. Only the current holder or a privileged
// role may release a live reservation; releasing an unreserved or expired
// one is an idempotent no-op.
func (uc *ReserveLeadUseCase) Release(ctx context.Context, leadID string, actor entity.Identity) error {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			return NewDomainError(CodeLeadNotFound, "lead %s not found", leadID)
		}
		return NewPersistenceError("find lead", err)
	}

	if lead.ReservedBy == "" {
		return nil
	}

	now := uc.Clock.Now()
	state := entity.EvaluateReservation(lead, actor.Email, now)
	if state == entity.ReservationClaimedByOther && !actor.Role.Privileged() {
		return NewDomainError(CodeNotHolder, "reservation is held by %s", lead.ReservedBy)
	}

	if err := uc.Leads.ClearReservation(ctx, leadID); err != nil {
		return NewPersistenceError("clear reservation", err)
	}
	return nil
}
