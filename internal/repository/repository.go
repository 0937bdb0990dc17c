package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Journal  JournalRepository
	AuditLog AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Journal:  NewJournalRepository(db),
		AuditLog: NewAuditLogRepository(db),
	}
}
