package models

import "time"

// Session is a server-side record of an issued token. A token is only
// accepted while its session row exists, so deleting rows revokes tokens.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// TokenHash is the hex HMAC-SHA256 of the signed token. The token
	// itself is never stored.
	TokenHash string `json:"-"`

	DeviceInfo string    `json:"device_info,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// ClientInfo describes the caller of an auth request. It is recorded on
// sessions and audit events.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
