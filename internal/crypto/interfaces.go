package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService bundles the key operations the auth layer needs.
// It knows nothing about the network, the database or users; its only job
// is to create and protect keys.
//
// Registration:
//
//	cred, DEK = NewCredential(password)
//	    salt      = random 32 bytes
//	    verifier  = SHA-256(PBKDF2(password, salt, slow) ‖ salt)
//	    wrapped   = AES-CBC(PBKDF2(password, salt, fast), DEK)
//
// Login is VerifyPassword followed by UnwrapKey; a password change is
// RewrapKey.
type KeyChainService interface {
	// NewCredential generates salt and DEK for a new account and returns
	// the credential to persist together with the raw DEK.
	NewCredential(password string) (Credential, []byte, error)

	// HashPassword computes the verifier for password and salt.
	HashPassword(password string, salt []byte) []byte

	// VerifyPassword checks password against a stored verifier in constant
	// time.
	VerifyPassword(password string, salt, verifier []byte) bool

	// UnwrapKey recovers the DEK. Fails with ErrKeyUnwrap.
	UnwrapKey(wrapped, password string, salt []byte) ([]byte, error)

	// RewrapKey re-protects the DEK of current under newPassword with a
	// fresh salt.
	RewrapKey(current Credential, currentPassword, newPassword string) (Credential, error)
}
