package models

import "time"

// UserInfo is the public part of a [User].
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login.
//
// EncryptionKey is the hex DEK. It is sent exactly once per login over the
// authenticated channel and must only ever live in client memory.
type AuthResponse struct {
	User          UserInfo `json:"user"`
	Token         string   `json:"token"`
	EncryptionKey string   `json:"encryptionKey"`
}

// VerifyResponse is returned by GET /api/auth/verify.
type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  UserInfo `json:"user"`
}

// MessageResponse carries a short human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every JSON error reply.
type ErrorResponse struct {
	Error string `json:"error"`

	// UnlockAt is set when the account is locked.
	UnlockAt *time.Time `json:"unlockAt,omitempty"`
}

// PasswordStrength is a 0..100 rating plus hints.
type PasswordStrength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// GeneratePasswordResponse is returned by the password generator endpoint.
type GeneratePasswordResponse struct {
	Password string           `json:"password"`
	Strength PasswordStrength `json:"strength"`
}

// VaultItemsResponse wraps a listing of vault items.
type VaultItemsResponse struct {
	Items []VaultItem `json:"items"`
}

// PasswordHistoryResponse wraps the history of one item.
type PasswordHistoryResponse struct {
	History []PasswordHistoryEntry `json:"history"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}

// CategoriesResponse wraps the categories of a user.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// SessionsResponse lists the live sessions of a user.
type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

// PreferencesResponse is returned by GET and PUT /api/settings.
type PreferencesResponse struct {
	Message  string      `json:"message,omitempty"`
	Settings Preferences `json:"settings"`
}
