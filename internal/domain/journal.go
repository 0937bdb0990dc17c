package domain

import (
	"time"

	"github.com/google/uuid"
)

// DispatchState tracks a mutating action through its lifecycle. A timed-out
// dispatch is not assumed failed: it moves to Verifying while the gateway
// polls the upstream for the expected terminal status, and only becomes
// Failed when verification gives up.
type DispatchState string

const (
	DispatchSent      DispatchState = "SENT"
	DispatchTimedOut  DispatchState = "TIMED_OUT"
	DispatchVerifying DispatchState = "VERIFYING"
	DispatchConfirmed DispatchState = "CONFIRMED"
	DispatchFailed    DispatchState = "FAILED"
)

// ActionJournalEntry is the persisted record of one dispatched action,
// including how (and whether) it was confirmed.
type ActionJournalEntry struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	RequestID string        `json:"request_id" db:"request_id"`
	Action    Action        `json:"action" db:"action"`
	ActorID   string        `json:"actor_id" db:"actor_id"`
	ActorRole string        `json:"actor_role" db:"actor_role"`
	State     DispatchState `json:"state" db:"state"`
	Attempts  int           `json:"attempts" db:"attempts"`
	Recovered bool          `json:"recovered" db:"recovered"`
	Error     *string       `json:"error,omitempty" db:"error"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
