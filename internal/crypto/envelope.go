// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Credential is everything the server keeps about a master password.
// None of it is secret on its own: the verifier is a one-way hash and the
// wrapped key is ciphertext under a password-derived key.
type Credential struct {
	Salt       []byte
	Verifier   []byte
	WrappedKey string
}

// GenerateSalt reads [SaltSize] random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

// GenerateDEK reads a fresh 256-bit data encryption key.
func GenerateDEK() ([]byte, error) {
	return randomBytes(KeySize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}

// WrapKey encrypts dek under a key derived from password and salt with the
// fast profile.
func (p KDFParams) WrapKey(dek []byte, password string, salt []byte) (string, error) {
	kek := p.Derive(password, salt, ProfileFast)
	defer Zero(kek)

	wrapped, err := Encrypt(kek, dek)
	if err != nil {
		return "", fmt.Errorf("wrap key: %w", err)
	}
	return wrapped, nil
}

// UnwrapKey reverses [KDFParams.WrapKey]. Every failure, whether a wrong
// password, a tampered envelope or a plaintext of the wrong size, is
// reported as [ErrKeyUnwrap].
func (p KDFParams) UnwrapKey(wrapped, password string, salt []byte) ([]byte, error) {
	kek := p.Derive(password, salt, ProfileFast)
	defer Zero(kek)

	dek, err := Decrypt(kek, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnwrap, err)
	}
	if len(dek) != KeySize {
		Zero(dek)
		return nil, fmt.Errorf("%w: unexpected key size %d", ErrKeyUnwrap, len(dek))
	}
	return dek, nil
}

// NewCredential provisions a new account: it generates a salt and a DEK,
// computes the verifier and wraps the DEK. The raw DEK is returned once so
// the caller can hand it to the client; it is never part of the credential.
func (p KDFParams) NewCredential(password string) (Credential, []byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Credential{}, nil, fmt.Errorf("generate salt: %w", err)
	}
	dek, err := GenerateDEK()
	if err != nil {
		return Credential{}, nil, fmt.Errorf("generate dek: %w", err)
	}

	wrapped, err := p.WrapKey(dek, password, salt)
	if err != nil {
		Zero(dek)
		return Credential{}, nil, err
	}

	return Credential{
		Salt:       salt,
		Verifier:   p.HashPassword(password, salt),
		WrappedKey: wrapped,
	}, dek, nil
}

// RewrapKey moves an existing DEK from currentPassword to newPassword.
// It unwraps with the current credential, draws a new salt and returns a
// credential for the new password that wraps the very same DEK.
//
// The caller must persist the result as a single unit; a half-written
// credential would strand the DEK.
func (p KDFParams) RewrapKey(current Credential, currentPassword, newPassword string) (Credential, error) {
	dek, err := p.UnwrapKey(current.WrappedKey, currentPassword, current.Salt)
	if err != nil {
		return Credential{}, err
	}
	defer Zero(dek)

	salt, err := GenerateSalt()
	if err != nil {
		return Credential{}, fmt.Errorf("generate salt: %w", err)
	}
	wrapped, err := p.WrapKey(dek, newPassword, salt)
	if err != nil {
		return Credential{}, err
	}

	return Credential{
		Salt:       salt,
		Verifier:   p.HashPassword(newPassword, salt),
		WrappedKey: wrapped,
	}, nil
}
