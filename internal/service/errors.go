package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDataProvided marks malformed input. Validator errors are
	// wrapped in it.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the one answer for an unknown email and a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAccountLocked            = errors.New("account temporarily locked")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")

	// ErrKeyIntegrity means the password verified but the stored wrapped key
	// did not unwrap, or the stored credential is not decodable.
	ErrKeyIntegrity = errors.New("stored key material failed integrity check")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrSessionRevoked          = errors.New("session was revoked")

	ErrVersionIsNotSpecified = errors.New("version is not specified")

	// ErrNotLoggedIn is returned by client services used without an open key
	// session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// AccountLockedError carries the end of a lockout. It matches
// [ErrAccountLocked] with errors.Is.
type AccountLockedError struct {
	UnlockAt time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrAccountLocked, e.UnlockAt.Format(time.RFC3339))
}

func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}
