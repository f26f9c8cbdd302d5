package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/lockbox/models"
)

// UserRepository persists accounts and their credential triple.
type UserRepository interface {
	// CreateUser inserts a user. A duplicate email yields ErrLoginAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// RecordLoginSuccess clears the lockout counters and stamps last_login.
	RecordLoginSuccess(ctx context.Context, userID string, at time.Time) error
	// RecordLoginFailure increments the failure counter in one statement and
	// returns the new count, so concurrent failures are all counted.
	RecordLoginFailure(ctx context.Context, failure models.LoginFailure) (int, error)
	// ChangeCredential replaces salt, verifier and wrapped key and deletes
	// every session of the user in one transaction.
	ChangeCredential(ctx context.Context, update models.CredentialUpdate) error
	// DeleteUser removes the account and, by cascade, everything it owns.
	DeleteUser(ctx context.Context, userID string) error
	// GetPreferences returns [models.DefaultPreferences] until the user
	// saves their own.
	GetPreferences(ctx context.Context, userID string) (models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error
}

// SessionRepository persists issued tokens by their hash.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// GetSession returns the live session matching id and token hash, or
	// ErrSessionNotFound.
	GetSession(ctx context.Context, sessionID, tokenHash string, now time.Time) (models.Session, error)
	// ListUserSessions returns the sessions of a user that expire after now.
	ListUserSessions(ctx context.Context, userID string, now time.Time) ([]models.Session, error)
	DeleteSession(ctx context.Context, sessionID, userID string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	// DeleteExpiredSessions removes sessions that expired before now and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// AuditRepository appends and reads security events.
type AuditRepository interface {
	RecordEvent(ctx context.Context, event models.AuditEvent) error
	ListEvents(ctx context.Context, query models.AuditLogQuery) ([]models.AuditEvent, error)
	CountEvents(ctx context.Context, userID string) (int, error)
	CountActionsSince(ctx context.Context, userID string, since time.Time) ([]models.ActionCount, error)
}

// VaultRepository persists encrypted vault items. Every method is scoped to
// the owning user; items of other users behave as not found.
type VaultRepository interface {
	CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error)
	// GetItem returns the item and stamps its last_used time.
	GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	// UpdateItem applies a partial update. When the data ciphertext changes
	// the previous value is appended to the item's password history.
	UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error)
	// DeleteItem soft-deletes the item.
	DeleteItem(ctx context.Context, userID, itemID string) error
	// ListHistory returns up to limit history entries, newest first.
	ListHistory(ctx context.Context, userID, itemID string, limit int) ([]models.PasswordHistoryEntry, error)
	// CountItemsByType counts live items per type.
	CountItemsByType(ctx context.Context, userID string) ([]models.TypeCount, error)
}

// CategoryRepository persists the item categories of each user.
type CategoryRepository interface {
	// CreateCategory places the category after the user's existing ones.
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	// ListCategories returns categories in sort order with live item counts.
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	// GetCategory returns ErrCategoryNotFound for categories of other users.
	GetCategory(ctx context.Context, userID, categoryID string) (models.Category, error)
}
