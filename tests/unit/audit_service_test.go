package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/audit"
	"unite-dashboard/tests/mocks"
)

func auditFixture() (*mocks.AuditLogRepository, *mocks.JournalRepository, audit.Service) {
	auditRepo := new(mocks.AuditLogRepository)
	journalRepo := new(mocks.JournalRepository)
	svc := audit.NewService(auditRepo, journalRepo, zap.NewNop())
	return auditRepo, journalRepo, svc
}

func TestAuditService(t *testing.T) {
	ctx := context.Background()

	t.Run("record swallows write failures", func(t *testing.T) {
		auditRepo, _, svc := auditFixture()
		auditRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		svc.Record(ctx, domain.CreateAuditLogInput{Action: "accept", RequestID: "r1"})

		auditRepo.AssertExpectations(t)
	})

	t.Run("recent journal reads the repository feed", func(t *testing.T) {
		_, journalRepo, svc := auditFixture()

		entries := []domain.ActionJournalEntry{{ID: uuid.New(), RequestID: "r1", Action: domain.ActionAccept}}
		journalRepo.On("ListRecent", mock.Anything, 10).Return(entries, nil)

		got, err := svc.RecentJournal(ctx, 10)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "r1", got[0].RequestID)
		journalRepo.AssertExpectations(t)
	})

	t.Run("journal entry lookup by id", func(t *testing.T) {
		_, journalRepo, svc := auditFixture()

		id := uuid.New()
		journalRepo.On("GetByID", mock.Anything, id).
			Return(&domain.ActionJournalEntry{ID: id, RequestID: "r1", State: domain.DispatchConfirmed}, nil)

		got, err := svc.JournalEntry(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, domain.DispatchConfirmed, got.State)
	})
}
