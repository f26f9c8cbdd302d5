package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/lockbox/models"
)

// Field names accepted by [AuthValidator].
const (
	FieldEmail           = "email"
	FieldMasterPassword  = "master_password"
	FieldConfirmPassword = "confirm_password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

const (
	// MinPasswordLength is the minimum length of a new master password.
	MinPasswordLength = 8

	// MaxPasswordLength caps the PBKDF2 input.
	MaxPasswordLength = 1024

	maxEmailLength = 254
)

// AuthValidator checks register, login and change-password requests.
type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.DeleteAccountRequest:
		return v.validateDeleteAccount(value, fields...)
	case *models.DeleteAccountRequest:
		return v.validateDeleteAccount(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldMasterPassword, FieldConfirmPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldMasterPassword:
			if err := validateNewPassword(req.MasterPassword); err != nil {
				return err
			}
		case FieldConfirmPassword:
			if req.MasterPassword != req.ConfirmPassword {
				return ErrPasswordsDoNotMatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLogin only checks presence: a login must not reveal the password
// policy of an existing account.
func (v *AuthValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldMasterPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldMasterPassword:
			if req.MasterPassword == "" {
				return ErrPasswordRequired
			}
			if utf8.RuneCountInString(req.MasterPassword) > MaxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCurrentPassword, FieldNewPassword, FieldConfirmPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldCurrentPassword:
			if req.CurrentPassword == "" {
				return ErrPasswordRequired
			}
		case FieldNewPassword:
			if err := validateNewPassword(req.NewPassword); err != nil {
				return err
			}
		case FieldConfirmPassword:
			if req.NewPassword != req.ConfirmPassword {
				return ErrPasswordsDoNotMatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateDeleteAccount(req models.DeleteAccountRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldConfirmPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldConfirmPassword:
			if req.ConfirmPassword == "" {
				return ErrPasswordRequired
			}
			if utf8.RuneCountInString(req.ConfirmPassword) > MaxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// NormalizeEmail lowercases and trims an email address. Accounts are keyed
// by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}

	// a bare address only: "Name <a@b.c>" parses but is rejected
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validateNewPassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
