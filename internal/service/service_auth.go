// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/internal/validators"
	"github.com/MKhiriev/lockbox/internal/workers"
	"github.com/MKhiriev/lockbox/models"
)

// authService is the concrete implementation of AuthService.
// It verifies master passwords against stored verifiers, unwraps the DEK,
// enforces account lockout and keeps one session row per issued token.
type authService struct {
	// users, sessions and audit are the data-access layer.
	users    store.UserRepository
	sessions store.SessionRepository
	audit    store.AuditRepository

	// keyChain performs every PBKDF2 derivation. All of its calls go through
	// kdfPool.
	keyChain crypto.KeyChainService
	kdfPool  *workers.KDFPool

	ids utils.IDGenerator

	// tokenSignKey signs JWTs; tokenHasher is keyed with it too.
	tokenSignKey string
	tokenHasher  *utils.TokenHasher

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration is the lifetime of a token and of its session row.
	tokenDuration time.Duration

	maxFailedAttempts int
	lockoutDuration   time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the repositories in
// storages and populated with token and lockout parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	storages *store.Storages,
	keyChain crypto.KeyChainService,
	kdfPool *workers.KDFPool,
	ids utils.IDGenerator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:             storages.UserRepository,
		sessions:          storages.SessionRepository,
		audit:             storages.AuditRepository,
		keyChain:          keyChain,
		kdfPool:           kdfPool,
		ids:               ids,
		tokenSignKey:      cfg.App.TokenSignKey,
		tokenHasher:       utils.NewTokenHasher(cfg.App.TokenSignKey),
		tokenIssuer:       cfg.App.TokenIssuer,
		tokenDuration:     cfg.App.TokenDuration,
		maxFailedAttempts: cfg.Security.MaxFailedAttempts,
		lockoutDuration:   cfg.Security.LockoutDuration,
		now:               func() time.Time { return time.Now().UTC() },
		logger:            logger,
	}
}

// Register creates a new account.
//
// It provisions a credential (salt, verifier, wrapped DEK), persists it and
// opens the first session. The raw DEK is returned hex encoded exactly once.
//
// Returns:
//   - store.ErrLoginAlreadyExists (wrapped) when the email is taken.
//   - a wrapped storage or token error otherwise.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, client models.ClientInfo) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)
	email := validators.NormalizeEmail(req.Email)

	if _, err := a.users.FindUserByEmail(ctx, email); err == nil {
		return models.AuthResponse{}, store.ErrLoginAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	var (
		cred crypto.Credential
		dek  []byte
		err  error
	)
	if poolErr := a.kdfPool.Do(ctx, func() {
		cred, dek, err = a.keyChain.NewCredential(req.MasterPassword)
	}); poolErr != nil {
		return models.AuthResponse{}, poolErr
	}
	if err != nil {
		log.Err(err).Msg("credential generation failed")
		return models.AuthResponse{}, fmt.Errorf("credential generation failed: %w", err)
	}
	defer crypto.Zero(dek)

	user, err := a.users.CreateUser(ctx, models.User{
		UserID:       a.ids.Generate(),
		Email:        email,
		Salt:         hex.EncodeToString(cred.Salt),
		VerifierHash: hex.EncodeToString(cred.Verifier),
		WrappedKey:   cred.WrappedKey,
	})
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.openSession(ctx, user.UserID, client)
	if err != nil {
		return models.AuthResponse{}, err
	}

	a.recordEvent(ctx, user.UserID, models.AuditRegister, client, nil)
	log.Info().Str("user_id", user.UserID).Msg("user registered")

	return models.AuthResponse{
		User:          models.UserInfo{ID: user.UserID, Email: user.Email},
		Token:         token,
		EncryptionKey: hex.EncodeToString(dek),
	}, nil
}

// Login authenticates an existing user and returns the unwrapped DEK.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials and
// cost the same slow derivation. A locked account yields *AccountLockedError.
// A verified password whose wrapped key does not unwrap yields
// ErrKeyIntegrity and is logged as an integrity fault.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)
	email := validators.NormalizeEmail(req.Email)

	user, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		if err = a.dummyDerivation(ctx, req.MasterPassword); err != nil {
			return models.AuthResponse{}, err
		}
		a.recordEvent(ctx, "", models.AuditLoginFailed, client, map[string]any{"reason": "unknown_account"})
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	now := a.now()
	if user.IsLocked(now) {
		a.recordEvent(ctx, user.UserID, models.AuditLoginLocked, client, nil)
		return models.AuthResponse{}, &AccountLockedError{UnlockAt: *user.LockedUntil}
	}

	cred, err := decodeCredential(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Bool("integrity_fault", true).Msg("stored credential is not decodable")
		return models.AuthResponse{}, ErrKeyIntegrity
	}

	ok, err := a.verify(ctx, req.MasterPassword, cred)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if !ok {
		return models.AuthResponse{}, a.loginFailed(ctx, user, now, client)
	}

	var dek []byte
	if poolErr := a.kdfPool.Do(ctx, func() {
		dek, err = a.keyChain.UnwrapKey(cred.WrappedKey, req.MasterPassword, cred.Salt)
	}); poolErr != nil {
		return models.AuthResponse{}, poolErr
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Bool("integrity_fault", true).Msg("verified password did not unwrap the data key")
		return models.AuthResponse{}, ErrKeyIntegrity
	}
	defer crypto.Zero(dek)

	if err = a.users.RecordLoginSuccess(ctx, user.UserID, now); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error resetting login attempts")
		return models.AuthResponse{}, fmt.Errorf("error resetting login attempts: %w", err)
	}

	token, err := a.openSession(ctx, user.UserID, client)
	if err != nil {
		return models.AuthResponse{}, err
	}

	a.recordEvent(ctx, user.UserID, models.AuditLoginSuccess, client, nil)

	return models.AuthResponse{
		User:          models.UserInfo{ID: user.UserID, Email: user.Email},
		Token:         token,
		EncryptionKey: hex.EncodeToString(dek),
	}, nil
}

// loginFailed counts the failure and locks the account once the counter
// reaches maxFailedAttempts. The increment happens in the store so parallel
// guesses cannot overwrite each other's count.
func (a *authService) loginFailed(ctx context.Context, user models.User, now time.Time, client models.ClientInfo) error {
	failure := models.LoginFailure{UserID: user.UserID}
	if a.maxFailedAttempts > 0 {
		failure.LockAfter = a.maxFailedAttempts
		failure.LockUntil = now.Add(a.lockoutDuration)
	}

	attempts, err := a.users.RecordLoginFailure(ctx, failure)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.UserID).Msg("error recording failed login")
		return fmt.Errorf("error recording failed login: %w", err)
	}

	a.recordEvent(ctx, user.UserID, models.AuditLoginFailed, client, map[string]any{"attempts": attempts})
	return ErrInvalidCredentials
}

// dummyDerivation spends one verifier derivation on a random salt.
func (a *authService) dummyDerivation(ctx context.Context, password string) error {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		salt = make([]byte, crypto.SaltSize)
	}
	return a.kdfPool.Do(ctx, func() {
		_ = a.keyChain.HashPassword(password, salt)
	})
}

func (a *authService) verify(ctx context.Context, password string, cred crypto.Credential) (bool, error) {
	var ok bool
	err := a.kdfPool.Do(ctx, func() {
		ok = a.keyChain.VerifyPassword(password, cred.Salt, cred.Verifier)
	})
	return ok, err
}

// Logout deletes the caller's session.
func (a *authService) Logout(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	if err := a.sessions.DeleteSession(ctx, sessionID, userID); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrSessionRevoked
		}
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	a.recordEvent(ctx, userID, models.AuditLogout, client, nil)
	return nil
}

// Verify returns the public profile of an authenticated user.
func (a *authService) Verify(ctx context.Context, userID string) (models.UserInfo, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.UserInfo{}, ErrSessionRevoked
		}
		return models.UserInfo{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return models.UserInfo{ID: user.UserID, Email: user.Email}, nil
}

// ChangePassword verifies the current password, rewraps the DEK under a
// fresh salt and stores the new credential. The store deletes every session
// of the user in the same transaction, so the caller must log in again.
func (a *authService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, client models.ClientInfo) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrSessionRevoked
		}
		return fmt.Errorf("user search by id failed: %w", err)
	}

	cred, err := decodeCredential(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Bool("integrity_fault", true).Msg("stored credential is not decodable")
		return ErrKeyIntegrity
	}

	ok, err := a.verify(ctx, req.CurrentPassword, cred)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCurrentPasswordIncorrect
	}

	var next crypto.Credential
	if poolErr := a.kdfPool.Do(ctx, func() {
		next, err = a.keyChain.RewrapKey(cred, req.CurrentPassword, req.NewPassword)
	}); poolErr != nil {
		return poolErr
	}
	if err != nil {
		if errors.Is(err, crypto.ErrKeyUnwrap) {
			log.Error().Err(err).Str("user_id", user.UserID).Bool("integrity_fault", true).Msg("verified password did not unwrap the data key")
			return ErrKeyIntegrity
		}
		return fmt.Errorf("error rewrapping data key: %w", err)
	}

	if err = a.users.ChangeCredential(ctx, models.CredentialUpdate{
		UserID:       user.UserID,
		Salt:         hex.EncodeToString(next.Salt),
		VerifierHash: hex.EncodeToString(next.Verifier),
		WrappedKey:   next.WrappedKey,
	}); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error storing new credential")
		return fmt.Errorf("error storing new credential: %w", err)
	}

	a.recordEvent(ctx, user.UserID, models.AuditPasswordChanged, client, nil)
	log.Info().Str("user_id", user.UserID).Msg("master password changed, sessions revoked")
	return nil
}

// DeleteAccount checks the master password like ChangePassword does and
// then deletes the user. The audit row is written before the user row goes
// and keeps a NULL user id afterwards.
func (a *authService) DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest, client models.ClientInfo) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrSessionRevoked
		}
		return fmt.Errorf("user search by id failed: %w", err)
	}

	cred, err := decodeCredential(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Bool("integrity_fault", true).Msg("stored credential is not decodable")
		return ErrKeyIntegrity
	}

	ok, err := a.verify(ctx, req.ConfirmPassword, cred)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCurrentPasswordIncorrect
	}

	a.recordEvent(ctx, user.UserID, models.AuditAccountDeleted, client, nil)

	if err = a.users.DeleteUser(ctx, user.UserID); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}

	log.Info().Str("user_id", user.UserID).Msg("account deleted")
	return nil
}

// Authenticate validates a raw JWT and checks that its session is still
// alive.
//
// Returns ErrTokenIsExpiredOrInvalid for a bad signature, issuer or expiry
// and ErrSessionRevoked when the session row is gone.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := a.sessions.GetSession(ctx, token.SessionID(), a.tokenHasher.Sum(tokenString), a.now())
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, ErrSessionRevoked
		}
		return models.Token{}, fmt.Errorf("session lookup failed: %w", err)
	}
	if session.UserID != token.UserID {
		return models.Token{}, ErrSessionRevoked
	}

	return token, nil
}

// openSession issues a JWT bound to a new session row and returns its
// compact form.
func (a *authService) openSession(ctx context.Context, userID string, client models.ClientInfo) (string, error) {
	sessionID := a.ids.Generate()

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, sessionID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	now := a.now()
	if err = a.sessions.CreateSession(ctx, models.Session{
		ID:         sessionID,
		UserID:     userID,
		TokenHash:  a.tokenHasher.Sum(token.SignedString),
		DeviceInfo: client.UserAgent,
		IPAddress:  client.IPAddress,
		ExpiresAt:  now.Add(a.tokenDuration),
		CreatedAt:  now,
	}); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error creating session")
		return "", fmt.Errorf("error creating session: %w", err)
	}

	return token.SignedString, nil
}

// recordEvent writes an audit row. A failing audit write is logged and does
// not fail the request.
func (a *authService) recordEvent(ctx context.Context, userID string, action models.AuditAction, client models.ClientInfo, details map[string]any) {
	err := a.audit.RecordEvent(ctx, models.AuditEvent{
		ID:        a.ids.Generate(),
		UserID:    userID,
		Action:    action,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Details:   details,
		CreatedAt: a.now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(action)).Msg("error writing audit event")
	}
}

func decodeCredential(user models.User) (crypto.Credential, error) {
	salt, err := hex.DecodeString(user.Salt)
	if err != nil || len(salt) != crypto.SaltSize {
		return crypto.Credential{}, errors.New("invalid stored salt")
	}
	verifier, err := hex.DecodeString(user.VerifierHash)
	if err != nil || len(verifier) != crypto.KeySize {
		return crypto.Credential{}, errors.New("invalid stored verifier")
	}

	return crypto.Credential{
		Salt:       salt,
		Verifier:   verifier,
		WrappedKey: user.WrappedKey,
	}, nil
}
