package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/internal/validators"
	"github.com/MKhiriev/lockbox/models"
)

type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error) {
	if filter.UserID == "" {
		return nil, ErrInvalidDataProvided
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidItemType)
	}
	if filter.CategoryID != nil && !utils.IsUUID(*filter.CategoryID) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidCategoryID)
	}
	return v.inner.ListItems(ctx, filter)
}

func (v *VaultValidationService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	if err := validateIDs(userID, itemID); err != nil {
		return models.VaultItem{}, err
	}
	return v.inner.GetItem(ctx, userID, itemID)
}

func (v *VaultValidationService) CreateItem(ctx context.Context, userID string, req models.VaultItemRequest) (models.VaultItem, error) {
	if userID == "" {
		return models.VaultItem{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateItem(ctx, userID, req)
}

func (v *VaultValidationService) UpdateItem(ctx context.Context, userID, itemID string, patch models.VaultItemPatch) (models.VaultItem, error) {
	if err := validateIDs(userID, itemID); err != nil {
		return models.VaultItem{}, err
	}
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdateItem(ctx, userID, itemID, patch)
}

func (v *VaultValidationService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := validateIDs(userID, itemID); err != nil {
		return err
	}
	return v.inner.DeleteItem(ctx, userID, itemID)
}

func (v *VaultValidationService) ListHistory(ctx context.Context, userID, itemID string) ([]models.PasswordHistoryEntry, error) {
	if err := validateIDs(userID, itemID); err != nil {
		return nil, err
	}
	return v.inner.ListHistory(ctx, userID, itemID)
}

func (v *VaultValidationService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	if userID == "" {
		return nil, ErrInvalidDataProvided
	}
	return v.inner.ListCategories(ctx, userID)
}

func (v *VaultValidationService) CreateCategory(ctx context.Context, userID string, req models.CategoryRequest) (models.Category, error) {
	if userID == "" {
		return models.Category{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateCategory(ctx, userID, req)
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

// validateIDs rejects a missing user and an item id that is not a UUID.
func validateIDs(userID, itemID string) error {
	if userID == "" || !utils.IsUUID(itemID) {
		return ErrInvalidDataProvided
	}
	return nil
}
