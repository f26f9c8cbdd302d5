package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

// vaultService stores opaque ciphertext on behalf of a user. It never sees
// a key and never decrypts.
type vaultService struct {
	items      store.VaultRepository
	categories store.CategoryRepository
	ids        utils.IDGenerator
	logger     *logger.Logger
}

func NewVaultService(items store.VaultRepository, categories store.CategoryRepository, ids utils.IDGenerator, logger *logger.Logger) VaultService {
	return &vaultService{
		items:      items,
		categories: categories,
		ids:        ids,
		logger:     logger,
	}
}

func (s *vaultService) ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error) {
	items, err := s.items.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing vault items: %w", err)
	}
	if items == nil {
		items = []models.VaultItem{}
	}
	return items, nil
}

func (s *vaultService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	item, err := s.items.GetItem(ctx, userID, itemID)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("error getting vault item: %w", err)
	}
	return item, nil
}

func (s *vaultService) CreateItem(ctx context.Context, userID string, req models.VaultItemRequest) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	notes := req.Notes
	if notes != nil && *notes == "" {
		notes = nil
	}
	category := req.CategoryID
	if category != nil && *category == "" {
		category = nil
	}
	if err := s.checkCategory(ctx, userID, category); err != nil {
		return models.VaultItem{}, err
	}

	item, err := s.items.CreateItem(ctx, models.VaultItem{
		ID:         s.ids.Generate(),
		UserID:     userID,
		Type:       req.Type,
		Title:      req.Title,
		Data:       req.Data,
		Notes:      notes,
		URL:        req.URL,
		IsFavorite: req.IsFavorite,
		CategoryID: category,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("error creating vault item")
		return models.VaultItem{}, fmt.Errorf("error creating vault item: %w", err)
	}

	log.Debug().Str("user_id", userID).Str("item_id", item.ID).Msg("vault item created")
	return item, nil
}

func (s *vaultService) UpdateItem(ctx context.Context, userID, itemID string, patch models.VaultItemPatch) (models.VaultItem, error) {
	if err := s.checkCategory(ctx, userID, patch.CategoryID); err != nil {
		return models.VaultItem{}, err
	}

	item, err := s.items.UpdateItem(ctx, models.VaultItemUpdate{
		ID:         itemID,
		UserID:     userID,
		Type:       patch.Type,
		Title:      patch.Title,
		Data:       patch.Data,
		Notes:      patch.Notes,
		URL:        patch.URL,
		IsFavorite: patch.IsFavorite,
		CategoryID: patch.CategoryID,
	})
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("error updating vault item: %w", err)
	}
	return item, nil
}

func (s *vaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := s.items.DeleteItem(ctx, userID, itemID); err != nil {
		return fmt.Errorf("error deleting vault item: %w", err)
	}
	return nil
}

func (s *vaultService) ListHistory(ctx context.Context, userID, itemID string) ([]models.PasswordHistoryEntry, error) {
	history, err := s.items.ListHistory(ctx, userID, itemID, models.PasswordHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing password history: %w", err)
	}
	if history == nil {
		history = []models.PasswordHistoryEntry{}
	}
	return history, nil
}

func (s *vaultService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CreateCategory fills in the default icon and color.
func (s *vaultService) CreateCategory(ctx context.Context, userID string, req models.CategoryRequest) (models.Category, error) {
	category := models.Category{
		ID:     s.ids.Generate(),
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Icon:   req.Icon,
		Color:  req.Color,
	}
	if category.Icon == "" {
		category.Icon = models.DefaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	created, err := s.categories.CreateCategory(ctx, category)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error creating category")
		return models.Category{}, fmt.Errorf("error creating category: %w", err)
	}
	return created, nil
}

// checkCategory makes sure an item is only filed under the caller's own
// categories. Nil and "" need no check.
func (s *vaultService) checkCategory(ctx context.Context, userID string, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	if _, err := s.categories.GetCategory(ctx, userID, *categoryID); err != nil {
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}
