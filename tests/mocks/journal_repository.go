package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"unite-dashboard/internal/domain"
)

type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Create(ctx context.Context, entry *domain.ActionJournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *JournalRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.DispatchState, attempts int, recovered bool, errMsg *string) error {
	args := m.Called(ctx, id, state, attempts, recovered, errMsg)
	return args.Error(0)
}

func (m *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionJournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActionJournalEntry), args.Error(1)
}

func (m *JournalRepository) ListByRequest(ctx context.Context, requestID string, limit int) ([]domain.ActionJournalEntry, error) {
	args := m.Called(ctx, requestID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionJournalEntry), args.Error(1)
}

func (m *JournalRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActionJournalEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionJournalEntry), args.Error(1)
}
