package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

// TestCreateLeadFromSiteCapture - captura do site cria lead, baseline e envia boas-vindas
func TestCreateLeadFromSiteCapture(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockLeadRepo := new(MockLeadRepository)
	mockHistory := new(MockStatusChangeRepository)
	mockEmail := new(MockEmailService)

	mockLeadRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Create", ctx, mock.MatchedBy(func(rec *entity.StatusChangeRecord) bool {
		return rec.Status == entity.StatusLead && rec.ChangedAt.Equal(now)
	})).Return(nil)
	mockEmail.On("SendWelcome", "ze@bar.com.br", "Bar do Zé").Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeadRepo, mockHistory, mockEmail, fixedClock{now})

	input := usecase.CreateLeadInput{
		Name:              "Bar do Zé",
		Phone:             "(11) 99999-0000",
		Email:             "ze@bar.com.br",
		City:              "São Paulo",
		EstablishmentType: "bar",
		Source:            entity.SourceSite,
	}

	lead, err := uc.Execute(ctx, input)

	assert.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, entity.StatusLead, lead.Status)
	assert.Equal(t, entity.SourceSite, lead.Source)
	mockEmail.AssertCalled(t, "SendWelcome", "ze@bar.com.br", "Bar do Zé")
	mockHistory.AssertCalled(t, "Create", ctx, mock.Anything)
}

// TestCreateLeadManualWithoutWelcome - criação manual não dispara email
func TestCreateLeadManualWithoutWelcome(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockHistory := new(MockStatusChangeRepository)
	mockEmail := new(MockEmailService)

	mockLeadRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeadRepo, mockHistory, mockEmail, nil)

	input := usecase.CreateLeadInput{
		Name:  "Restaurante da Maria",
		Email: "maria@restaurante.com.br",
	}

	lead, err := uc.Execute(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceManual, lead.Source)
	mockEmail.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
}

// TestCreateLeadValidationFailure
func TestCreateLeadValidationFailure(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockHistory := new(MockStatusChangeRepository)
	mockEmail := new(MockEmailService)

	uc := usecase.NewCreateLeadUseCase(mockLeadRepo, mockHistory, mockEmail, nil)

	// Sem nome e sem contato
	input := usecase.CreateLeadInput{City: "São Paulo"}

	lead, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, lead)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, usecase.CodeInvalidInput, err.(*usecase.DomainError).Code)
	mockLeadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestCreateLeadSurvivesHistoryFailure - falha no baseline não derruba a criação
func TestCreateLeadSurvivesHistoryFailure(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockHistory := new(MockStatusChangeRepository)
	mockEmail := new(MockEmailService)

	mockLeadRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Create", ctx, mock.Anything).Return(errors.New("database error"))

	uc := usecase.NewCreateLeadUseCase(mockLeadRepo, mockHistory, mockEmail, nil)

	input := usecase.CreateLeadInput{
		Name:  "Bar do Zé",
		Phone: "11999990000",
	}

	lead, err := uc.Execute(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, lead)
}

// TestCreateLeadPersistenceFailure
func TestCreateLeadPersistenceFailure(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockHistory := new(MockStatusChangeRepository)
	mockEmail := new(MockEmailService)

	mockLeadRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

	uc := usecase.NewCreateLeadUseCase(mockLeadRepo, mockHistory, mockEmail, nil)

	input := usecase.CreateLeadInput{
		Name:  "Bar do Zé",
		Phone: "11999990000",
	}

	lead, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, lead)
	assert.True(t, usecase.IsTechnicalError(err))
	mockHistory.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidateCreateLeadInput(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{})
	assert.NotEmpty(t, errs)

	errs = usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{Name: "X", Phone: "11999990000"})
	assert.NotEmpty(t, errs) // nome curto demais

	errs = usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{Name: "Bar do Zé", Email: "não-é-email"})
	assert.NotEmpty(t, errs)

	errs = usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{Name: "Bar do Zé", Phone: "123"})
	assert.NotEmpty(t, errs)

	errs = usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{
		Name:  "Bar do Zé",
		Phone: "(11) 99999-0000",
		Email: "ze@bar.com.br",
	})
	assert.Empty(t, errs)
}
