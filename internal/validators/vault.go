// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

// Field names accepted by [VaultValidator].
const (
	FieldType     = "type"
	FieldTitle    = "title"
	FieldData     = "data"
	FieldNotes    = "notes"
	FieldURL      = "url"
	FieldLength   = "length"
	FieldCategory = "category"
	FieldName     = "name"
	FieldIcon     = "icon"
	FieldColor    = "color"
)

const (
	maxURLLength          = 2048
	maxCategoryNameLength = 100
	maxCategoryIconLength = 50

	// MaxGeneratedLength caps server-side password generation.
	MaxGeneratedLength = 256
)

// VaultValidator checks vault item requests. Encrypted fields are checked
// for envelope syntax only; the server holds no key to check more.
type VaultValidator struct{}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItemRequest:
		return v.validateItemRequest(value, fields...)
	case *models.VaultItemRequest:
		return v.validateItemRequest(*value, fields...)

	case models.VaultItemPatch:
		return v.validateItemPatch(value, fields...)
	case *models.VaultItemPatch:
		return v.validateItemPatch(*value, fields...)

	case models.GeneratePasswordRequest:
		return v.validateGenerateRequest(value, fields...)
	case *models.GeneratePasswordRequest:
		return v.validateGenerateRequest(*value, fields...)

	case models.CategoryRequest:
		return v.validateCategoryRequest(value, fields...)
	case *models.CategoryRequest:
		return v.validateCategoryRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateItemRequest(req models.VaultItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldTitle, FieldData, FieldNotes, FieldURL, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if !req.Type.Valid() {
				return ErrInvalidItemType
			}
		case FieldTitle:
			if req.Title == "" {
				return ErrEmptyTitle
			}
			if !crypto.IsEnvelope(string(req.Title)) {
				return ErrInvalidEncryptedField
			}
		case FieldData:
			if req.Data == "" {
				return ErrEmptyData
			}
			if !crypto.IsEnvelope(string(req.Data)) {
				return ErrInvalidEncryptedField
			}
		case FieldNotes:
			if req.Notes != nil && *req.Notes != "" && !crypto.IsEnvelope(string(*req.Notes)) {
				return ErrInvalidEncryptedField
			}
		case FieldURL:
			if req.URL != nil && len(*req.URL) > maxURLLength {
				return ErrURLTooLong
			}
		case FieldCategory:
			if err := validateCategoryID(req.CategoryID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateItemPatch(patch models.VaultItemPatch, fields ...string) error {
	if len(fields) == 0 {
		if patch.Type == nil && patch.Title == nil && patch.Data == nil &&
			patch.Notes == nil && patch.URL == nil && patch.IsFavorite == nil && patch.CategoryID == nil {
			return ErrNoFieldsToUpdate
		}
		fields = []string{FieldType, FieldTitle, FieldData, FieldNotes, FieldURL, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if patch.Type != nil && !patch.Type.Valid() {
				return ErrInvalidItemType
			}
		case FieldTitle:
			if patch.Title != nil && !crypto.IsEnvelope(string(*patch.Title)) {
				return ErrInvalidEncryptedField
			}
		case FieldData:
			if patch.Data != nil && !crypto.IsEnvelope(string(*patch.Data)) {
				return ErrInvalidEncryptedField
			}
		case FieldNotes:
			// an empty string clears the notes
			if patch.Notes != nil && *patch.Notes != "" && !crypto.IsEnvelope(string(*patch.Notes)) {
				return ErrInvalidEncryptedField
			}
		case FieldURL:
			if patch.URL != nil && len(*patch.URL) > maxURLLength {
				return ErrURLTooLong
			}
		case FieldCategory:
			// an empty string removes the item from its category
			if err := validateCategoryID(patch.CategoryID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateGenerateRequest(req models.GeneratePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLength}
	}

	for _, f := range fields {
		switch f {
		case FieldLength:
			// zero selects the default length
			if req.Length < 0 || req.Length > MaxGeneratedLength {
				return ErrInvalidLength
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateCategoryRequest(req models.CategoryRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldIcon, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return ErrEmptyCategoryName
			}
			if utf8.RuneCountInString(name) > maxCategoryNameLength {
				return ErrCategoryNameTooLong
			}
		case FieldIcon:
			if utf8.RuneCountInString(req.Icon) > maxCategoryIconLength {
				return ErrInvalidCategoryIcon
			}
		case FieldColor:
			if req.Color != "" && !hexColor.MatchString(req.Color) {
				return ErrInvalidCategoryColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateCategoryID(id *string) error {
	if id != nil && *id != "" && !utils.IsUUID(*id) {
		return ErrInvalidCategoryID
	}
	return nil
}
