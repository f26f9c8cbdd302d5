package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/internal/validators"
	"github.com/MKhiriev/lockbox/models"
)

type SettingsValidationService struct {
	inner     SettingsService
	validator validators.Validator
}

func NewSettingsValidationService() SettingsServiceWrapper {
	return &SettingsValidationService{
		validator: validators.NewSettingsValidator(),
	}
}

func (v *SettingsValidationService) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	if userID == "" {
		return models.Preferences{}, ErrInvalidDataProvided
	}
	return v.inner.GetPreferences(ctx, userID)
}

func (v *SettingsValidationService) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
	if userID == "" {
		return models.Preferences{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdatePreferences(ctx, userID, prefs)
}

func (v *SettingsValidationService) ListSessions(ctx context.Context, userID string) ([]models.Session, error) {
	if userID == "" {
		return nil, ErrInvalidDataProvided
	}
	return v.inner.ListSessions(ctx, userID)
}

func (v *SettingsValidationService) RevokeSession(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	if userID == "" || !utils.IsUUID(sessionID) {
		return ErrInvalidDataProvided
	}
	return v.inner.RevokeSession(ctx, userID, sessionID, client)
}

func (v *SettingsValidationService) AuditLog(ctx context.Context, query models.AuditLogQuery) (models.AuditLogPage, error) {
	if query.UserID == "" {
		return models.AuditLogPage{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, query); err != nil {
		return models.AuditLogPage{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.AuditLog(ctx, query)
}

func (v *SettingsValidationService) Stats(ctx context.Context, userID string) (models.VaultStats, error) {
	if userID == "" {
		return models.VaultStats{}, ErrInvalidDataProvided
	}
	return v.inner.Stats(ctx, userID)
}

func (v *SettingsValidationService) Wrap(inner SettingsService) SettingsService {
	v.inner = inner
	return v
}
