// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// PBKDF2 work factors. Stored in the struct so they can be
	// adjusted per deployment target.
	params KDFParams
}

// NewKeyChainService constructs a [KeyChainService] with the production
// PBKDF2-HMAC-SHA256 work factors:
//   - fast profile (key wrapping): 100,000 iterations
//   - slow profile (verifier):     600,000 iterations
func NewKeyChainService() KeyChainService {
	return NewKeyChainServiceWithParams(DefaultKDFParams())
}

// NewKeyChainServiceWithParams is [NewKeyChainService] with explicit work
// factors. Non-positive counts are replaced by the production values.
func NewKeyChainServiceWithParams(params KDFParams) KeyChainService {
	if params.FastIterations <= 0 {
		params.FastIterations = FastIterations
	}
	if params.SlowIterations <= 0 {
		params.SlowIterations = SlowIterations
	}
	return &keyChainService{params: params}
}

func (k *keyChainService) NewCredential(password string) (Credential, []byte, error) {
	return k.params.NewCredential(password)
}

func (k *keyChainService) HashPassword(password string, salt []byte) []byte {
	return k.params.HashPassword(password, salt)
}

func (k *keyChainService) VerifyPassword(password string, salt, verifier []byte) bool {
	return k.params.VerifyPassword(password, salt, verifier)
}

func (k *keyChainService) UnwrapKey(wrapped, password string, salt []byte) ([]byte, error) {
	return k.params.UnwrapKey(wrapped, password, salt)
}

func (k *keyChainService) RewrapKey(current Credential, currentPassword, newPassword string) (Credential, error) {
	return k.params.RewrapKey(current, currentPassword, newPassword)
}
