package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type CreateLeadUseCase struct {
	Leads        entity.LeadRepositoryInterface
	History      entity.StatusChangeRepositoryInterface
	EmailService EmailService
	Clock        Clock
}

func NewCreateLeadUseCase(
	leads entity.LeadRepositoryInterface,
	history entity.StatusChangeRepositoryInterface,
	emailService EmailService,
	clock Clock,
) *CreateLeadUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CreateLeadUseCase{
		Leads:        leads,
		History:      history,
		EmailService: emailService,
		Clock:        clock,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, NewDomainError(CodeInvalidInput, "%s", errs[0].Error())
	}

	source := input.Source
	if source == "" {
		source = entity.SourceManual
	}

	lead, err := entity.NewLead(input.Name, input.Phone, input.Email, input.City, input.EstablishmentType, source)
	if err != nil {
		return nil, NewDomainError(CodeInvalidInput, "%s", err.Error())
	}
	lead.EmployeeBracket = input.EmployeeBracket
	lead.Notes = input.Notes
	lead.Salesperson = input.Salesperson

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, NewPersistenceError("create lead", err)
	}

	// Initial status record: the follow-up scanner needs a baseline even for
	// leads that never changed status.
	rec := &entity.StatusChangeRecord{
		LeadID:      lead.ID,
		Status:      lead.Status,
		Salesperson: lead.Salesperson,
		ChangedAt:   uc.Clock.Now(),
	}
	if err := uc.History.Create(ctx, rec); err != nil {
		logrus.WithError(err).WithField("lead_id", lead.ID).Warn("lead created but initial status record failed")
	}

	// Site captures get a thank-you email. Failure here must not fail the
	// capture itself.
	if source == entity.SourceSite && lead.Email != "" && uc.EmailService != nil {
		if err := uc.EmailService.SendWelcome(lead.Email, lead.Name); err != nil {
			logrus.WithError(err).WithField("lead_id", lead.ID).Warn("welcome email failed")
		}
	}

	return lead, nil
}
