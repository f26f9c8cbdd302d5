package client

import "errors"

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrPasswordsMismatch = errors.New("passwords do not match")
	ErrMissingItemID     = errors.New("-id is required")
)
