package models

import "time"

// User represents an account entity used for authentication and key recovery.
// It carries the stored credential triple (salt, verifier, wrapped key).
// None of these are secret on their own, but they must never be exposed
// outside trusted boundaries.
type User struct {
	// UserID is the UUIDv7 identifier of the user.
	UserID string `json:"id"`

	// Email is the unique login identifier, stored lowercased.
	Email string `json:"email"`

	// Salt is the hex-encoded 32-byte per-user salt. It is rotated only by
	// a password change.
	Salt string `json:"-"`

	// VerifierHash is the hex-encoded SHA-256 verifier of the master password.
	VerifierHash string `json:"-"`

	// WrappedKey is the DEK encrypted under the password-derived wrap key,
	// in "<hex iv>:<hex ciphertext>" form.
	WrappedKey string `json:"-"`

	// FailedAttempts counts consecutive failed logins.
	FailedAttempts int `json:"-"`

	// LockedUntil is set while the account is locked out.
	LockedUntil *time.Time `json:"-"`

	// LastLogin is the time of the last successful login.
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsLocked reports whether the account is locked at the given moment.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// CredentialUpdate replaces the credential triple of a user.
// It is always written together with session revocation.
type CredentialUpdate struct {
	UserID       string
	Salt         string
	VerifierHash string
	WrappedKey   string
}

// LoginFailure describes one failed password check. The store increments
// the counter atomically and sets LockUntil once the new count reaches
// LockAfter. A zero LockAfter disables locking.
type LoginFailure struct {
	UserID    string
	LockAfter int
	LockUntil time.Time
}
