package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/adapter"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/models"
)

type clientVaultService struct {
	adapter             adapter.ServerAdapter
	clientCryptoService ClientCryptoService
	logger              *logger.Logger
}

func NewClientVaultService(serverAdapter adapter.ServerAdapter, cryptoSvc ClientCryptoService, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{
		adapter:             serverAdapter,
		clientCryptoService: cryptoSvc,
		logger:              logger,
	}
}

// List fetches and decrypts the items matching filter. Records that fail to
// decrypt are returned with Err set.
func (v *clientVaultService) List(ctx context.Context, filter models.VaultItemFilter) ([]models.DecryptedItem, error) {
	if !v.clientCryptoService.Active() {
		return nil, ErrNotLoggedIn
	}

	items, err := v.adapter.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items on server: %w", mapAdapterError(err))
	}

	decrypted := v.clientCryptoService.DecryptItems(items)
	for _, item := range decrypted {
		if item.Failed() {
			v.logger.Warn().Err(item.Err).Str("item_id", item.ID).Msg("vault item could not be decrypted")
		}
	}
	return decrypted, nil
}

// Get returns the decrypted item. A decryption failure is returned both in
// the record and as the error.
func (v *clientVaultService) Get(ctx context.Context, itemID string) (models.DecryptedItem, error) {
	if !v.clientCryptoService.Active() {
		return models.DecryptedItem{}, ErrNotLoggedIn
	}

	item, err := v.adapter.GetItem(ctx, itemID)
	if err != nil {
		return models.DecryptedItem{}, fmt.Errorf("get item on server: %w", mapAdapterError(err))
	}

	decrypted := v.clientCryptoService.DecryptItem(item)
	return decrypted, decrypted.Err
}

func (v *clientVaultService) Add(ctx context.Context, item models.NewItem) (models.VaultItem, error) {
	if !v.clientCryptoService.Active() {
		return models.VaultItem{}, ErrNotLoggedIn
	}

	req, err := v.clientCryptoService.EncryptItem(item)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("encrypt item: %w", err)
	}

	created, err := v.adapter.CreateItem(ctx, req)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("create item on server: %w", mapAdapterError(err))
	}
	return created, nil
}

func (v *clientVaultService) Delete(ctx context.Context, itemID string) error {
	if err := v.adapter.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item on server: %w", mapAdapterError(err))
	}
	return nil
}
