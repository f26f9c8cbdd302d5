package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/MKhiriev/lockbox/internal/adapter"
	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/models"
)

type clientAuthService struct {
	adapter             adapter.ServerAdapter
	clientCryptoService ClientCryptoService
	sessionTTL          time.Duration
	logger              *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, cryptoSvc ClientCryptoService, sessionTTL time.Duration, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:             serverAdapter,
		clientCryptoService: cryptoSvc,
		sessionTTL:          sessionTTL,
		logger:              logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.UserInfo, error) {
	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("register on server: %w", mapAdapterError(err))
	}
	if err = a.unlock(resp); err != nil {
		return models.UserInfo{}, err
	}

	a.logger.Info().Str("user_id", resp.User.ID).Msg("registered")
	return resp.User, nil
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.UserInfo, error) {
	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("login on server: %w", mapAdapterError(err))
	}
	if err = a.unlock(resp); err != nil {
		return models.UserInfo{}, err
	}

	a.logger.Info().Str("user_id", resp.User.ID).Msg("logged in")
	return resp.User, nil
}

// unlock opens the key session with the DEK of an auth response. The
// decoded copy is scrubbed once the session holds its own.
func (a *clientAuthService) unlock(resp models.AuthResponse) error {
	dek, err := hex.DecodeString(resp.EncryptionKey)
	if err != nil || len(dek) != crypto.KeySize {
		crypto.Zero(dek)
		a.adapter.SetToken("")
		return fmt.Errorf("%w: server returned an unusable encryption key", ErrKeyIntegrity)
	}
	defer crypto.Zero(dek)

	a.clientCryptoService.Open(dek, a.sessionTTL)
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	defer a.clientCryptoService.Close()

	if err := a.adapter.Logout(ctx); err != nil {
		return fmt.Errorf("logout on server: %w", mapAdapterError(err))
	}
	return nil
}

func (a *clientAuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := a.adapter.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("change password on server: %w", mapAdapterError(err))
	}

	a.clientCryptoService.Close()
	a.logger.Info().Msg("master password changed, key session closed")
	return nil
}
