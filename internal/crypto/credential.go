// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
)

// HashPassword computes the stored verifier:
//
//	SHA-256( PBKDF2(password, salt, slow) ‖ salt )
//
// The derived key never leaves this function.
func (p KDFParams) HashPassword(password string, salt []byte) []byte {
	key := p.Derive(password, salt, ProfileSlow)
	defer Zero(key)

	h := sha256.New()
	h.Write(key)
	h.Write(salt)
	return h.Sum(nil)
}

// VerifyPassword recomputes the verifier and compares it with verifier in
// constant time. It never errors: any mismatch, including a malformed
// verifier, is simply false.
func (p KDFParams) VerifyPassword(password string, salt, verifier []byte) bool {
	candidate := p.HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
