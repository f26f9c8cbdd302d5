// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// KeySession holds the DEK of one logged-in user for the lifetime of a
// login. It is created after a successful unlock and cleared on logout or
// once its TTL passes; after that every call fails with [ErrSessionClosed].
//
// A KeySession is safe for concurrent use.
type KeySession struct {
	mu        sync.RWMutex
	dek       []byte
	expiresAt time.Time
	now       func() time.Time
}

// NewKeySession copies dek into a new session. A zero ttl disables expiry.
// The caller should scrub its own copy of dek afterwards.
func NewKeySession(dek []byte, ttl time.Duration) *KeySession {
	s := &KeySession{
		dek: bytes.Clone(dek),
		now: time.Now,
	}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return s
}

// Active reports whether the session still holds a key.
func (s *KeySession) Active() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

// activeLocked expires the session when its deadline passed. s.mu must be
// held for writing.
func (s *KeySession) activeLocked() bool {
	if s.dek == nil {
		return false
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		Zero(s.dek)
		s.dek = nil
		return false
	}
	return true
}

// ExpiresAt returns the deadline, or the zero time when the session never
// expires.
func (s *KeySession) ExpiresAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Clear scrubs the key. It is safe to call more than once.
func (s *KeySession) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	Zero(s.dek)
	s.dek = nil
}

// withKey runs fn with the live key while holding the lock, so Clear cannot
// scrub the key halfway through an operation.
func (s *KeySession) withKey(fn func(key []byte) error) error {
	if s == nil {
		return ErrSessionClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrSessionClosed
	}
	return fn(s.dek)
}

// EncryptString encrypts text under the session key.
func (s *KeySession) EncryptString(plaintext string) (string, error) {
	var out string
	err := s.withKey(func(key []byte) error {
		var err error
		out, err = EncryptString(key, plaintext)
		return err
	})
	return out, err
}

// DecryptString decrypts a field produced by [KeySession.EncryptString].
func (s *KeySession) DecryptString(envelope string) (string, error) {
	var out string
	err := s.withKey(func(key []byte) error {
		var err error
		out, err = DecryptString(key, envelope)
		return err
	})
	return out, err
}

// EncryptJSON serializes v to JSON and encrypts it under the session key.
func (s *KeySession) EncryptJSON(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}
	defer Zero(plaintext)

	var out string
	err = s.withKey(func(key []byte) error {
		var err error
		out, err = Encrypt(key, plaintext)
		return err
	})
	return out, err
}

// DecryptJSON decrypts envelope and unmarshals the plaintext into target.
// Malformed JSON behind a valid envelope counts as [ErrDecryption].
func (s *KeySession) DecryptJSON(envelope string, target any) error {
	return s.withKey(func(key []byte) error {
		plaintext, err := Decrypt(key, envelope)
		if err != nil {
			return err
		}
		defer Zero(plaintext)

		if err := json.Unmarshal(plaintext, target); err != nil {
			return &DecryptError{Stage: "unmarshal", Err: ErrDecryption}
		}
		return nil
	})
}
