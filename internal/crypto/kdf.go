// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// FastIterations is the PBKDF2 work factor used to derive the wrap key.
	FastIterations = 100_000

	// SlowIterations is the PBKDF2 work factor used for the stored verifier.
	SlowIterations = 600_000

	// KeySize is the size of every derived key and of the DEK (256 bits).
	KeySize = 32

	// SaltSize is the size of the per-user salt.
	SaltSize = 32
)

// Profile selects a PBKDF2 work factor.
type Profile int

const (
	// ProfileFast is used for key wrapping, which runs on every unlock.
	ProfileFast Profile = iota
	// ProfileSlow is used for the password verifier that is stored at rest
	// and is therefore the offline-attack target.
	ProfileSlow
)

func (p Profile) String() string {
	switch p {
	case ProfileFast:
		return "fast"
	case ProfileSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// KDFParams holds the iteration counts for both profiles.
// Lower values are only meant for tests and constrained devices.
type KDFParams struct {
	FastIterations int
	SlowIterations int
}

// DefaultKDFParams returns the production work factors.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		FastIterations: FastIterations,
		SlowIterations: SlowIterations,
	}
}

// Iterations returns the iteration count configured for profile.
// An unknown profile falls back to the slow count.
func (p KDFParams) Iterations(profile Profile) int {
	if profile == ProfileFast {
		return p.FastIterations
	}
	return p.SlowIterations
}

// Derive runs PBKDF2-HMAC-SHA256 and returns a [KeySize]-byte key.
// It is deterministic and has no error path.
func (p KDFParams) Derive(password string, salt []byte, profile Profile) []byte {
	return pbkdf2.Key([]byte(password), salt, p.Iterations(profile), KeySize, sha256.New)
}

// DeriveKey derives a key with the production work factors.
func DeriveKey(password string, salt []byte, profile Profile) []byte {
	return DefaultKDFParams().Derive(password, salt, profile)
}
