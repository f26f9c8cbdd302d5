package store

import (
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/utils"
)

// Storages groups the repositories of the server.
type Storages struct {
	UserRepository     UserRepository
	SessionRepository  SessionRepository
	AuditRepository    AuditRepository
	VaultRepository    VaultRepository
	CategoryRepository CategoryRepository
}

// NewStorages builds every repository on top of one connection.
func NewStorages(db *DB, ids utils.IDGenerator, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		SessionRepository:  NewSessionRepository(db, log),
		AuditRepository:    NewAuditRepository(db, log),
		VaultRepository:    NewVaultRepository(db, ids, log),
		CategoryRepository: NewCategoryRepository(db, log),
	}
}
