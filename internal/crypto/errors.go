// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEnvelope is returned when an encrypted field does not match
	// the "<hex iv>:<hex ciphertext>" layout. It signals a corrupt or
	// foreign record, not a wrong key.
	ErrInvalidEnvelope = errors.New("invalid encrypted field format")

	// ErrDecryption is returned when a well-formed envelope cannot be
	// decrypted: bad padding, wrong key or a plaintext that is not valid UTF-8.
	ErrDecryption = errors.New("decryption failed")

	// ErrKeyUnwrap is returned when a wrapped DEK cannot be recovered with
	// the supplied password and salt.
	ErrKeyUnwrap = errors.New("unable to unwrap data encryption key")

	// ErrSessionClosed is returned by [KeySession] after Clear or expiry.
	ErrSessionClosed = errors.New("key session is closed")

	// ErrInvalidLength is returned by the password generator for a
	// non-positive length.
	ErrInvalidLength = errors.New("password length must be positive")

	// ErrRandomSource is returned when the system CSPRNG cannot supply
	// bytes for an IV, salt, key or generated password.
	ErrRandomSource = errors.New("random source failure")
)

// DecryptError describes which step of field decryption failed.
// Err is always [ErrInvalidEnvelope] or [ErrDecryption], so callers may
// match with errors.Is without caring about the stage.
type DecryptError struct {
	Stage string
	Err   error
}

func (e *DecryptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

func formatError(stage string) error {
	return &DecryptError{Stage: stage, Err: ErrInvalidEnvelope}
}

func decryptError(stage string) error {
	return &DecryptError{Stage: stage, Err: ErrDecryption}
}
