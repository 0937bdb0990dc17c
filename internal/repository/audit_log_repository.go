package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"unite-dashboard/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, limit int) ([]domain.AuditLog, error)
	ListByRequest(ctx context.Context, requestID string, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, actor_role, action, request_id, detail, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ActorID, log.ActorRole, log.Action, log.RequestID,
		log.Detail, log.IPAddress, log.UserAgent,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var logs []domain.AuditLog
	query := `
		SELECT * FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}

func (r *auditLogRepository) ListByRequest(ctx context.Context, requestID string, limit int) ([]domain.AuditLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var logs []domain.AuditLog
	query := `
		SELECT * FROM audit_logs
		WHERE request_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &logs, query, requestID, limit)
	return logs, err
}

func CreateAuditLog(repo AuditLogRepository, ctx context.Context, input domain.CreateAuditLogInput) error {
	detailJSON, _ := json.Marshal(input.Detail)

	log := &domain.AuditLog{
		ID:        uuid.New(),
		ActorID:   input.ActorID,
		ActorRole: input.ActorRole,
		Action:    input.Action,
		RequestID: input.RequestID,
		Detail:    detailJSON,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}

	return repo.Create(ctx, log)
}
