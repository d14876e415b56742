package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) BulkCreate(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateScore(ctx context.Context, id string, score int, at time.Time) error {
	args := m.Called(ctx, id, score, at)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) Claim(ctx context.Context, id, salesperson string, reservedAt, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, id, salesperson, reservedAt, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) ClearReservation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatusChangeRepository
type MockStatusChangeRepository struct {
	mock.Mock
}

func (m *MockStatusChangeRepository) Create(ctx context.Context, rec *entity.StatusChangeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStatusChangeRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.StatusChangeRecord, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StatusChangeRecord), args.Error(1)
}

func (m *MockStatusChangeRepository) ListAll(ctx context.Context) ([]*entity.StatusChangeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StatusChangeRecord), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReminder(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendWelcome(to, name string) error {
	args := m.Called(to, name)
	return args.Error(0)
}
