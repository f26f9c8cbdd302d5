// Package utils provides general-purpose helpers used across the server and
// the client: typed context keys, token hashing, JSON responses, HTTP client
// construction, JWT issuing and validation, and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user id (string).
	UserIDCtxKey = contextKey("userID")

	// SessionIDCtxKey stores the id of the session the request token
	// belongs to (string).
	SessionIDCtxKey = contextKey("sessionID")
)

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing, empty or of another type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, UserIDCtxKey)
}

// GetSessionIDFromContext retrieves the session identifier from the context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, SessionIDCtxKey)
}

// WithAuth stores both the user and the session id.
func WithAuth(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
