package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

// ManageLeadUseCase groups the plain CRUD edits on a lead: contact fields,
// status moves, score pushes and (admin-only) deletion.
type ManageLeadUseCase struct {
	Leads   entity.LeadRepositoryInterface
	History entity.StatusChangeRepositoryInterface
	Clock   Clock
}

func NewManageLeadUseCase(
	leads entity.LeadRepositoryInterface,
	history entity.StatusChangeRepositoryInterface,
	clock Clock,
) *ManageLeadUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ManageLeadUseCase{Leads: leads, History: history, Clock: clock}
}

func (uc *ManageLeadUseCase) Update(ctx context.Context, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	lead.Name = strings.TrimSpace(input.Name)
	lead.Phone = strings.TrimSpace(input.Phone)
	lead.Email = strings.TrimSpace(input.Email)
	lead.City = strings.TrimSpace(input.City)
	lead.EstablishmentType = strings.TrimSpace(input.EstablishmentType)
	lead.EmployeeBracket = input.EmployeeBracket
	lead.Notes = input.Notes
	lead.Salesperson = strings.TrimSpace(input.Salesperson)

	if err := lead.Validate(); err != nil {
		return nil, NewDomainError(CodeInvalidInput, "%s", err.Error())
	}

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, NewPersistenceError("update lead", err)
	}
	return lead, nil
}

// ChangeStatus moves the lead to any status and appends the audit record
// the follow-up scanner measures elapsed time from. Re-setting the current
// status is a no-op: no record is written.
func (uc *ManageLeadUseCase) ChangeStatus(ctx context.Context, leadID string, status entity.LeadStatus, actor entity.Identity) (*entity.Lead, error) {
	if !status.Valid() {
		return nil, NewDomainError(CodeInvalidInput, "invalid status %q", status)
	}

	lead, err := uc.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if lead.Status == status {
		return lead, nil
	}

	if err := uc.Leads.UpdateStatus(ctx, leadID, status); err != nil {
		return nil, NewPersistenceError("update lead status", err)
	}

	rec := &entity.StatusChangeRecord{
		LeadID:      leadID,
		Status:      status,
		Salesperson: actor.Name,
		ChangedAt:   uc.Clock.Now(),
	}
	if err := uc.History.Create(ctx, rec); err != nil {
		return nil, NewPersistenceError("record status change", err)
	}

	lead.Status = status
	return lead, nil
}

func (uc *ManageLeadUseCase) SetScore(ctx context.Context, leadID string, score int) error {
	if !isValidScore(score) {
		return NewDomainError(CodeInvalidInput, "score must be between 0 and 100")
	}

	if _, err := uc.findLead(ctx, leadID); err != nil {
		return err
	}

	if err := uc.Leads.UpdateScore(ctx, leadID, score, uc.Clock.Now()); err != nil {
		return NewPersistenceError("update lead score", err)
	}
	return nil
}

func (uc *ManageLeadUseCase) Delete(ctx context.Context, leadID string, actor entity.Identity) error {
	if !actor.Role.Admin() {
		return NewDomainError(CodeForbidden, "only admins may delete leads")
	}
	if err := uc.Leads.Delete(ctx, leadID); err != nil {
		if err == entity.ErrLeadNotFound {
			return NewDomainError(CodeLeadNotFound, "lead %s not found", leadID)
		}
		return NewPersistenceError("delete lead", err)
	}
	return nil
}

func (uc *ManageLeadUseCase) BulkDelete(ctx context.Context, ids []string, actor entity.Identity) (int64, error) {
	if !actor.Role.Admin() {
		return 0, NewDomainError(CodeForbidden, "only admins may bulk-delete leads")
	}
	if len(ids) == 0 {
		return 0, nil
	}
	deleted, err := uc.Leads.BulkDelete(ctx, ids)
	if err != nil {
		return 0, NewPersistenceError("bulk delete leads", err)
	}
	return deleted, nil
}

func (uc *ManageLeadUseCase) findLead(ctx context.Context, leadID string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			return nil, NewDomainError(CodeLeadNotFound, "lead %s not found", leadID)
		}
		return nil, NewPersistenceError("find lead", err)
	}
	return lead, nil
}
