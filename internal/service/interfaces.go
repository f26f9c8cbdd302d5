package service

import (
	"context"

	"github.com/MKhiriev/lockbox/models"
)

// AuthService owns accounts, credentials and sessions.
type AuthService interface {
	// Register creates an account and returns the first token together with
	// the freshly generated DEK.
	Register(ctx context.Context, req models.RegisterRequest, client models.ClientInfo) (models.AuthResponse, error)

	// Login verifies the master password, unwraps the DEK and opens a session.
	Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.AuthResponse, error)

	// Logout deletes the session the caller's token belongs to.
	Logout(ctx context.Context, userID, sessionID string, client models.ClientInfo) error

	Verify(ctx context.Context, userID string) (models.UserInfo, error)

	// ChangePassword rewraps the DEK under the new password and revokes
	// every session of the user.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, client models.ClientInfo) error

	// Authenticate accepts a token only while its session row is alive.
	Authenticate(ctx context.Context, tokenString string) (models.Token, error)

	// DeleteAccount verifies the password and removes the user with all
	// sessions, items and categories.
	DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest, client models.ClientInfo) error
}

// VaultService stores and returns encrypted vault items of one user.
type VaultService interface {
	ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error)
	GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	CreateItem(ctx context.Context, userID string, req models.VaultItemRequest) (models.VaultItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, patch models.VaultItemPatch) (models.VaultItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
	ListHistory(ctx context.Context, userID, itemID string) ([]models.PasswordHistoryEntry, error)

	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, userID string, req models.CategoryRequest) (models.Category, error)
}

// SettingsService serves account settings: preferences, sessions, the
// audit log and vault statistics.
type SettingsService interface {
	GetPreferences(ctx context.Context, userID string) (models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error)

	ListSessions(ctx context.Context, userID string) ([]models.Session, error)
	// RevokeSession deletes one session of the user. Revoking the caller's
	// own session logs it out.
	RevokeSession(ctx context.Context, userID, sessionID string, client models.ClientInfo) error

	AuditLog(ctx context.Context, query models.AuditLogQuery) (models.AuditLogPage, error)
	Stats(ctx context.Context, userID string) (models.VaultStats, error)
}

type GeneratorService interface {
	Generate(ctx context.Context, req models.GeneratePasswordRequest) (models.GeneratePasswordResponse, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// SettingsServiceWrapper defines middleware composition for SettingsService.
type SettingsServiceWrapper interface {
	Wrap(SettingsService) SettingsService
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// logging or validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}
