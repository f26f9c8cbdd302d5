// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

type settingsService struct {
	users      store.UserRepository
	sessions   store.SessionRepository
	audit      store.AuditRepository
	items      store.VaultRepository
	categories store.CategoryRepository

	ids    utils.IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewSettingsService(storages *store.Storages, ids utils.IDGenerator, logger *logger.Logger) SettingsService {
	return &settingsService{
		users:      storages.UserRepository,
		sessions:   storages.SessionRepository,
		audit:      storages.AuditRepository,
		items:      storages.VaultRepository,
		categories: storages.CategoryRepository,
		ids:        ids,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *settingsService) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	prefs, err := s.users.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Preferences{}, ErrSessionRevoked
		}
		return models.Preferences{}, fmt.Errorf("error reading preferences: %w", err)
	}
	return prefs, nil
}

func (s *settingsService) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
	if err := s.users.UpdatePreferences(ctx, userID, prefs); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Preferences{}, ErrSessionRevoked
		}
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error saving preferences")
		return models.Preferences{}, fmt.Errorf("error saving preferences: %w", err)
	}
	return prefs, nil
}

func (s *settingsService) ListSessions(ctx context.Context, userID string) ([]models.Session, error) {
	sessions, err := s.sessions.ListUserSessions(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

// RevokeSession returns store.ErrSessionNotFound (wrapped) for unknown
// sessions and for sessions of other users.
func (s *settingsService) RevokeSession(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	if err := s.sessions.DeleteSession(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("error revoking session: %w", err)
	}

	err := s.audit.RecordEvent(ctx, models.AuditEvent{
		ID:        s.ids.Generate(),
		UserID:    userID,
		Action:    models.AuditSessionRevoked,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Details:   map[string]any{"session_id": sessionID},
		CreatedAt: s.now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(models.AuditSessionRevoked)).Msg("error writing audit event")
	}
	return nil
}

// AuditLog applies the default page size to a zero limit and caps larger
// ones at [models.MaxAuditLogLimit].
func (s *settingsService) AuditLog(ctx context.Context, query models.AuditLogQuery) (models.AuditLogPage, error) {
	switch {
	case query.Limit == 0:
		query.Limit = models.DefaultAuditLogLimit
	case query.Limit > models.MaxAuditLogLimit:
		query.Limit = models.MaxAuditLogLimit
	}

	events, err := s.audit.ListEvents(ctx, query)
	if err != nil {
		return models.AuditLogPage{}, fmt.Errorf("error listing audit log: %w", err)
	}
	total, err := s.audit.CountEvents(ctx, query.UserID)
	if err != nil {
		return models.AuditLogPage{}, fmt.Errorf("error counting audit log: %w", err)
	}

	if events == nil {
		events = []models.AuditEvent{}
	}
	return models.AuditLogPage{Logs: events, Total: total}, nil
}

func (s *settingsService) Stats(ctx context.Context, userID string) (models.VaultStats, error) {
	byType, err := s.items.CountItemsByType(ctx, userID)
	if err != nil {
		return models.VaultStats{}, fmt.Errorf("error counting items: %w", err)
	}
	categories, err := s.categories.ListCategories(ctx, userID)
	if err != nil {
		return models.VaultStats{}, fmt.Errorf("error listing categories: %w", err)
	}
	since := s.now().AddDate(0, 0, -models.StatsWindowDays)
	activity, err := s.audit.CountActionsSince(ctx, userID, since)
	if err != nil {
		return models.VaultStats{}, fmt.Errorf("error counting recent activity: %w", err)
	}

	stats := models.VaultStats{
		ItemsByType:     make([]models.TypeCount, 0, len(byType)),
		ItemsByCategory: make([]models.CategoryCount, 0, len(categories)),
		RecentActivity:  make([]models.ActionCount, 0, len(activity)),
	}
	for _, c := range byType {
		stats.TotalItems += c.Count
		stats.ItemsByType = append(stats.ItemsByType, c)
	}
	for _, c := range categories {
		stats.ItemsByCategory = append(stats.ItemsByCategory, models.CategoryCount{Name: c.Name, Count: c.ItemCount})
	}
	stats.RecentActivity = append(stats.RecentActivity, activity...)

	return stats, nil
}
