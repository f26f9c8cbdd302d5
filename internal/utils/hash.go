package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// TokenHasher computes keyed digests of bearer tokens. Only the digest is
// persisted, so a leaked sessions table cannot be replayed.
//
// HMAC instances are pooled; a TokenHasher is safe for concurrent use.
type TokenHasher struct {
	pool sync.Pool
}

func NewTokenHasher(key string) *TokenHasher {
	k := []byte(key)
	return &TokenHasher{
		pool: sync.Pool{New: func() any { return hmac.New(sha256.New, k) }},
	}
}

// Sum returns the hex HMAC-SHA256 of token.
func (h *TokenHasher) Sum(token string) string {
	mac := h.pool.Get().(hash.Hash)
	defer h.pool.Put(mac)

	mac.Reset()
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
