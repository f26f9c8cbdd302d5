package adapter

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrLocked              = errors.New("account locked")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrNotLoggedIn         = errors.New("no bearer token set")
)

// LockedError is returned for HTTP 423. UnlockAt is zero when the server did
// not report it.
type LockedError struct {
	UnlockAt time.Time
}

func (e *LockedError) Error() string {
	if e.UnlockAt.IsZero() {
		return ErrLocked.Error()
	}
	return fmt.Sprintf("%s until %s", ErrLocked, e.UnlockAt.Format(time.RFC3339))
}

func (e *LockedError) Is(target error) bool {
	return target == ErrLocked
}
