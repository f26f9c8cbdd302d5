package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a parsed or freshly signed access token. The "sub" claim holds
// the user id and the "jti" claim holds the id of the session row the token
// is bound to.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent as the bearer credential.
	SignedString string `json:"-"`
	UserID       string `json:"-"`
}

// SessionID returns the "jti" claim.
func (t *Token) SessionID() string {
	return t.ID
}

// ExpiresIn reports how long the token stays valid after now. It is zero
// for an expired token or one without an "exp" claim.
func (t *Token) ExpiresIn(now time.Time) time.Duration {
	if t.ExpiresAt == nil {
		return 0
	}
	return max(t.ExpiresAt.Sub(now), 0)
}

func (t *Token) String() string {
	return t.SignedString
}
