// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/models"
)

type clientCryptoService struct {
	mu      sync.RWMutex
	session *crypto.KeySession
}

func NewClientCryptoService() ClientCryptoService {
	return &clientCryptoService{}
}

func (c *clientCryptoService) Open(dek []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.session.Clear()
	}
	c.session = crypto.NewKeySession(dek, ttl)
}

func (c *clientCryptoService) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.session.Clear()
		c.session = nil
	}
}

func (c *clientCryptoService) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.Active()
}

func (c *clientCryptoService) current() (*crypto.KeySession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, crypto.ErrSessionClosed
	}
	return c.session, nil
}

func (c *clientCryptoService) EncryptItem(item models.NewItem) (models.VaultItemRequest, error) {
	session, err := c.current()
	if err != nil {
		return models.VaultItemRequest{}, err
	}
	if item.Payload == nil {
		return models.VaultItemRequest{}, fmt.Errorf("encrypt item: %w", models.ErrUnknownItemType)
	}

	title, err := session.EncryptString(item.Title)
	if err != nil {
		return models.VaultItemRequest{}, fmt.Errorf("encrypt title: %w", err)
	}

	payload, err := models.MarshalPayload(item.Payload)
	if err != nil {
		return models.VaultItemRequest{}, err
	}
	data, err := session.EncryptString(string(payload))
	crypto.Zero(payload)
	if err != nil {
		return models.VaultItemRequest{}, fmt.Errorf("encrypt data: %w", err)
	}

	req := models.VaultItemRequest{
		Type:       item.Payload.ItemType(),
		Title:      models.EncryptedField(title),
		Data:       models.EncryptedField(data),
		IsFavorite: item.IsFavorite,
	}
	if item.Notes != "" {
		notes, err := session.EncryptString(item.Notes)
		if err != nil {
			return models.VaultItemRequest{}, fmt.Errorf("encrypt notes: %w", err)
		}
		field := models.EncryptedField(notes)
		req.Notes = &field
	}
	if item.URL != "" {
		url := item.URL
		req.URL = &url
	}
	return req, nil
}

func (c *clientCryptoService) DecryptItem(item models.VaultItem) models.DecryptedItem {
	out := models.DecryptedItem{
		ID:         item.ID,
		Type:       item.Type,
		IsFavorite: item.IsFavorite,
		UpdatedAt:  item.UpdatedAt,
	}
	if item.URL != nil {
		out.URL = *item.URL
	}

	session, err := c.current()
	if err != nil {
		out.Err = err
		return out
	}

	title, err := session.DecryptString(string(item.Title))
	if err != nil {
		out.Err = fmt.Errorf("decrypt title: %w", err)
		return out
	}

	data, err := session.DecryptString(string(item.Data))
	if err != nil {
		out.Err = fmt.Errorf("decrypt data: %w", err)
		return out
	}
	payload, err := models.UnmarshalPayload(item.Type, []byte(data))
	if err != nil {
		out.Err = fmt.Errorf("decode data: %w", err)
		return out
	}

	var notes string
	if item.Notes != nil && *item.Notes != "" {
		notes, err = session.DecryptString(string(*item.Notes))
		if err != nil {
			out.Err = fmt.Errorf("decrypt notes: %w", err)
			return out
		}
	}

	out.Title = title
	out.Payload = payload
	out.Notes = notes
	return out
}

func (c *clientCryptoService) DecryptItems(items []models.VaultItem) []models.DecryptedItem {
	out := make([]models.DecryptedItem, 0, len(items))
	for _, item := range items {
		out = append(out, c.DecryptItem(item))
	}
	return out
}
