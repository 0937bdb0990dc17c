package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/repository"
)

// Service records who did what against which request, and exposes the
// recent activity feeds the admin screens show. Recording is best-effort:
// an audit write never fails the action it describes.
type Service interface {
	Record(ctx context.Context, input domain.CreateAuditLogInput)
	RecentActivity(ctx context.Context, limit int) ([]domain.AuditLog, error)
	RequestActivity(ctx context.Context, requestID string, limit int) ([]domain.AuditLog, error)
	RequestJournal(ctx context.Context, requestID string, limit int) ([]domain.ActionJournalEntry, error)
	RecentJournal(ctx context.Context, limit int) ([]domain.ActionJournalEntry, error)
	JournalEntry(ctx context.Context, id uuid.UUID) (*domain.ActionJournalEntry, error)
}

type service struct {
	auditRepo   repository.AuditLogRepository
	journalRepo repository.JournalRepository
	logger      *zap.Logger
}

func NewService(auditRepo repository.AuditLogRepository, journalRepo repository.JournalRepository, logger *zap.Logger) Service {
	return &service{
		auditRepo:   auditRepo,
		journalRepo: journalRepo,
		logger:      logger,
	}
}

func (s *service) Record(ctx context.Context, input domain.CreateAuditLogInput) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, input); err != nil {
		s.logger.Warn("audit log write failed",
			zap.String("action", input.Action),
			zap.String("request_id", input.RequestID),
			zap.Error(err))
	}
}

func (s *service) RecentActivity(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.auditRepo.List(ctx, limit)
}

func (s *service) RequestActivity(ctx context.Context, requestID string, limit int) ([]domain.AuditLog, error) {
	return s.auditRepo.ListByRequest(ctx, requestID, limit)
}

func (s *service) RequestJournal(ctx context.Context, requestID string, limit int) ([]domain.ActionJournalEntry, error) {
	return s.journalRepo.ListByRequest(ctx, requestID, limit)
}

func (s *service) RecentJournal(ctx context.Context, limit int) ([]domain.ActionJournalEntry, error) {
	return s.journalRepo.ListRecent(ctx, limit)
}

func (s *service) JournalEntry(ctx context.Context, id uuid.UUID) (*domain.ActionJournalEntry, error) {
	return s.journalRepo.GetByID(ctx, id)
}
