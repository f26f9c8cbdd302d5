package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/validators"
	"github.com/MKhiriev/lockbox/models"
)

// AuthValidationService rejects malformed auth requests before any key
// derivation is spent on them.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest, client models.ClientInfo) (models.AuthResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Register(ctx, req, client)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.AuthResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Login(ctx, req, client)
}

func (v *AuthValidationService) Logout(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	if userID == "" || sessionID == "" {
		return ErrInvalidDataProvided
	}
	return v.inner.Logout(ctx, userID, sessionID, client)
}

func (v *AuthValidationService) Verify(ctx context.Context, userID string) (models.UserInfo, error) {
	if userID == "" {
		return models.UserInfo{}, ErrInvalidDataProvided
	}
	return v.inner.Verify(ctx, userID)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, client models.ClientInfo) error {
	if userID == "" {
		return ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.ChangePassword(ctx, userID, req, client)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest, client models.ClientInfo) error {
	if userID == "" {
		return ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.DeleteAccount(ctx, userID, req, client)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
