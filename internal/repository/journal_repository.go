package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"unite-dashboard/internal/domain"
)

type JournalRepository interface {
	Create(ctx context.Context, entry *domain.ActionJournalEntry) error
	UpdateState(ctx context.Context, id uuid.UUID, state domain.DispatchState, attempts int, recovered bool, errMsg *string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionJournalEntry, error)
	ListByRequest(ctx context.Context, requestID string, limit int) ([]domain.ActionJournalEntry, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ActionJournalEntry, error)
}

type journalRepository struct {
	db *sqlx.DB
}

func NewJournalRepository(db *sqlx.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *domain.ActionJournalEntry) error {
	query := `
		INSERT INTO action_journal (id, request_id, action, actor_id, actor_role, state, attempts, recovered, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.RequestID, entry.Action, entry.ActorID,
		entry.ActorRole, entry.State, entry.Attempts, entry.Recovered, entry.Error,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
}

func (r *journalRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.DispatchState, attempts int, recovered bool, errMsg *string) error {
	query := `
		UPDATE action_journal
		SET state = $2, attempts = $3, recovered = $4, error = $5, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, state, attempts, recovered, errMsg)
	return err
}

func (r *journalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionJournalEntry, error) {
	var entry domain.ActionJournalEntry
	query := `SELECT * FROM action_journal WHERE id = $1`
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) ListByRequest(ctx context.Context, requestID string, limit int) ([]domain.ActionJournalEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var entries []domain.ActionJournalEntry
	query := `
		SELECT * FROM action_journal
		WHERE request_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &entries, query, requestID, limit)
	return entries, err
}

func (r *journalRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActionJournalEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var entries []domain.ActionJournalEntry
	query := `
		SELECT * FROM action_journal
		ORDER BY created_at DESC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}
