package validators

import (
	"context"

	"github.com/MKhiriev/lockbox/models"
)

// Field names accepted by [SettingsValidator].
const (
	FieldTheme            = "theme"
	FieldAutoLockTimeout  = "auto_lock_timeout"
	FieldClipboardTimeout = "clipboard_timeout"
	FieldPasswordLength   = "password_length"
	FieldPage             = "page"
)

const (
	maxAutoLockMinutes  = 24 * 60
	maxClipboardSeconds = 60 * 60
)

// SettingsValidator checks stored preferences and audit log paging.
type SettingsValidator struct{}

func NewSettingsValidator() Validator {
	return &SettingsValidator{}
}

func (v *SettingsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Preferences:
		return v.validatePreferences(value, fields...)
	case *models.Preferences:
		return v.validatePreferences(*value, fields...)

	case models.AuditLogQuery:
		return v.validateAuditLogQuery(value, fields...)
	case *models.AuditLogQuery:
		return v.validateAuditLogQuery(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SettingsValidator) validatePreferences(p models.Preferences, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTheme, FieldAutoLockTimeout, FieldClipboardTimeout, FieldPasswordLength}
	}

	for _, f := range fields {
		switch f {
		case FieldTheme:
			switch p.Theme {
			case models.ThemeDark, models.ThemeLight, models.ThemeSystem:
			default:
				return ErrInvalidTheme
			}
		case FieldAutoLockTimeout:
			if p.AutoLockTimeout < 0 || p.AutoLockTimeout > maxAutoLockMinutes {
				return ErrInvalidTimeout
			}
		case FieldClipboardTimeout:
			if p.ClipboardTimeout < 0 || p.ClipboardTimeout > maxClipboardSeconds {
				return ErrInvalidTimeout
			}
		case FieldPasswordLength:
			if p.DefaultPasswordLength < 1 || p.DefaultPasswordLength > MaxGeneratedLength {
				return ErrInvalidLength
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAuditLogQuery rejects negative bounds only; zero and oversized
// limits are normalized by the service.
func (v *SettingsValidator) validateAuditLogQuery(q models.AuditLogQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPage}
	}

	for _, f := range fields {
		switch f {
		case FieldPage:
			if q.Limit < 0 || q.Offset < 0 {
				return ErrInvalidPageBounds
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
