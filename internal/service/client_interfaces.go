package service

import (
	"context"
	"time"

	"github.com/MKhiriev/lockbox/models"
)

// ClientCryptoService holds the unlocked data encryption key (DEK) of the
// current login and converts vault items between plaintext and the envelopes
// the server stores. Nothing leaves this service unencrypted.
type ClientCryptoService interface {
	// Open replaces the current key session with one holding a copy of dek.
	// A zero ttl keeps the key until Close.
	Open(dek []byte, ttl time.Duration)

	// Close scrubs the key. Later calls fail with crypto.ErrSessionClosed.
	Close()

	// Active reports whether a live key is held.
	Active() bool

	// EncryptItem encrypts title, payload and notes of item. URL and the
	// favorite flag stay in clear.
	EncryptItem(item models.NewItem) (models.VaultItemRequest, error)

	// DecryptItem decrypts one record. A failure is reported through the
	// Err field of the result, never as a panic or a partial plaintext.
	DecryptItem(item models.VaultItem) models.DecryptedItem

	// DecryptItems decrypts a listing record by record.
	DecryptItems(items []models.VaultItem) []models.DecryptedItem
}

// ClientAuthService drives the account flows against the server and keeps
// the key session of the crypto service in step with the server session.
type ClientAuthService interface {
	// Register creates an account and unlocks the new DEK.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserInfo, error)

	// Login authenticates and unlocks the DEK returned by the server.
	Login(ctx context.Context, req models.LoginRequest) (models.UserInfo, error)

	// Logout revokes the server session and scrubs the key. The key is
	// scrubbed even when the server call fails.
	Logout(ctx context.Context) error

	// ChangePassword rewraps the DEK under a new master password. Every
	// session is revoked, so the local key is scrubbed as well.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
}

// ClientVaultService manages vault items of the logged in user.
type ClientVaultService interface {
	List(ctx context.Context, filter models.VaultItemFilter) ([]models.DecryptedItem, error)
	Get(ctx context.Context, itemID string) (models.DecryptedItem, error)
	Add(ctx context.Context, item models.NewItem) (models.VaultItem, error)
	Delete(ctx context.Context, itemID string) error
}
