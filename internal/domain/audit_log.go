package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ActorID   string          `json:"actor_id" db:"actor_id"`
	ActorRole string          `json:"actor_role" db:"actor_role"`
	Action    string          `json:"action" db:"action"`
	RequestID string          `json:"request_id" db:"request_id"`
	Detail    json.RawMessage `json:"detail,omitempty" db:"detail"`
	IPAddress *string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreateAuditLogInput struct {
	ActorID   string
	ActorRole string
	Action    string
	RequestID string
	Detail    interface{}
	IPAddress *string
	UserAgent *string
}
