// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the lockbox server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401,
// [ErrLocked] for 423).
package adapter

import (
	"context"

	"github.com/MKhiriev/lockbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the lockbox
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// Everything sent through the adapter that belongs to a vault item is already
// ciphertext. The only secret that travels in clear over the (TLS) channel is
// the master password on register, login and change-password, and the DEK in
// the auth response.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. Register and Login call it on success.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success the returned token is stored
	// via SetToken and the response carries the hex DEK.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with email and master password. A locked account
	// yields a wrapped *[LockedError].
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Logout revokes the current session and forgets the token.
	Logout(ctx context.Context) error

	// Verify reports the user the current token belongs to.
	Verify(ctx context.Context) (models.UserInfo, error)

	// ChangePassword rewraps the DEK on the server. Every session of the user,
	// including the current one, is revoked on success.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// ListItems returns the caller's items. filter.UserID is ignored; the
	// server infers the user from the bearer token.
	ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error)
	GetItem(ctx context.Context, itemID string) (models.VaultItem, error)
	CreateItem(ctx context.Context, req models.VaultItemRequest) (models.VaultItem, error)
	UpdateItem(ctx context.Context, itemID string, patch models.VaultItemPatch) (models.VaultItem, error)
	DeleteItem(ctx context.Context, itemID string) error
	ListHistory(ctx context.Context, itemID string) ([]models.PasswordHistoryEntry, error)

	// GeneratePassword asks the server generator for a password.
	GeneratePassword(ctx context.Context, req models.GeneratePasswordRequest) (models.GeneratePasswordResponse, error)
}
