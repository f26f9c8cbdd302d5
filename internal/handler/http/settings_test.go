package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lockbox/internal/app"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/models"
)

const testOtherSessionID = "01890a5d-ac96-774b-bcce-b302099a8059"

func TestSettingsRoutes_RequireToken(t *testing.T) {
	h := newTestSettingsHandler(nil, &mockSettingsService{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/settings"},
		{http.MethodPut, "/api/settings"},
		{http.MethodGet, "/api/settings/sessions"},
		{http.MethodDelete, "/api/settings/sessions/" + testOtherSessionID},
		{http.MethodGet, "/api/settings/audit-log"},
		{http.MethodGet, "/api/settings/stats"},
		{http.MethodDelete, "/api/settings/account"},
	} {
		rec := doRequest(t, h, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestGetSettings(t *testing.T) {
	settings := &mockSettingsService{
		getPreferencesFn: func(_ context.Context, userID string) (models.Preferences, error) {
			assert.Equal(t, testUserID, userID)
			return models.DefaultPreferences(), nil
		},
	}

	rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodGet, "/api/settings", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.PreferencesResponse](t, rec)
	assert.Empty(t, resp.Message)
	assert.Equal(t, models.DefaultPreferences(), resp.Settings)
}

func TestUpdateSettings_MissingMembersKeepDefaults(t *testing.T) {
	settings := &mockSettingsService{
		updatePreferencesFn: func(_ context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, models.ThemeLight, prefs.Theme)
			assert.Equal(t, 5, prefs.AutoLockTimeout)
			assert.Equal(t, 16, prefs.DefaultPasswordLength)
			return prefs, nil
		},
	}

	rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodPut, "/api/settings", `{"theme":"light"}`, testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.PreferencesResponse](t, rec)
	assert.Equal(t, app.MsgSettingsUpdated, resp.Message)
	assert.Equal(t, models.ThemeLight, resp.Settings.Theme)
}

func TestUpdateSettings_Invalid(t *testing.T) {
	settings := &mockSettingsService{
		updatePreferencesFn: func(context.Context, string, models.Preferences) (models.Preferences, error) {
			return models.Preferences{}, errors.Join(service.ErrInvalidDataProvided, errors.New("theme"))
		},
	}

	h := newTestSettingsHandler(nil, settings)

	rec := doRequest(t, h, http.MethodPut, "/api/settings", `{"theme":"neon"}`, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/api/settings", `{"theme":`, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSessions(t *testing.T) {
	created := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	settings := &mockSettingsService{
		listSessionsFn: func(_ context.Context, userID string) ([]models.Session, error) {
			assert.Equal(t, testUserID, userID)
			return []models.Session{{
				ID:         testOtherSessionID,
				UserID:     testUserID,
				TokenHash:  "deadbeef",
				DeviceInfo: "lockbox-cli",
				CreatedAt:  created,
				ExpiresAt:  created.Add(24 * time.Hour),
			}}, nil
		},
	}

	rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodGet, "/api/settings/sessions", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.SessionsResponse](t, rec)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, testOtherSessionID, resp.Sessions[0].ID)
	assert.NotContains(t, rec.Body.String(), "deadbeef")
}

func TestRevokeSession(t *testing.T) {
	t.Run("revoked", func(t *testing.T) {
		settings := &mockSettingsService{
			revokeSessionFn: func(_ context.Context, userID, sessionID string, client models.ClientInfo) error {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, testOtherSessionID, sessionID)
				assert.Equal(t, "lockbox-test", client.UserAgent)
				return nil
			},
		}

		rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodDelete, "/api/settings/sessions/"+testOtherSessionID, "", testToken)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, app.MsgSessionRevoked, decodeBody[models.MessageResponse](t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		settings := &mockSettingsService{
			revokeSessionFn: func(context.Context, string, string, models.ClientInfo) error {
				return store.ErrSessionNotFound
			},
		}

		rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodDelete, "/api/settings/sessions/"+testOtherSessionID, "", testToken)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, app.MsgSessionNotFound, decodeBody[models.ErrorResponse](t, rec).Error)
	})
}

func TestAuditLog_Paging(t *testing.T) {
	settings := &mockSettingsService{
		auditLogFn: func(_ context.Context, query models.AuditLogQuery) (models.AuditLogPage, error) {
			assert.Equal(t, models.AuditLogQuery{UserID: testUserID, Limit: 20, Offset: 40}, query)
			return models.AuditLogPage{
				Logs:  []models.AuditEvent{{ID: "e-1", Action: models.AuditLoginSuccess}},
				Total: 41,
			}, nil
		},
	}

	rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodGet, "/api/settings/audit-log?limit=20&offset=40", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[models.AuditLogPage](t, rec)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, models.AuditLoginSuccess, page.Logs[0].Action)
}

func TestAuditLog_BadLimit(t *testing.T) {
	h := newTestSettingsHandler(nil, &mockSettingsService{})

	for _, target := range []string{
		"/api/settings/audit-log?limit=ten",
		"/api/settings/audit-log?offset=1.5",
	} {
		rec := doRequest(t, h, http.MethodGet, target, "", testToken)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestStats(t *testing.T) {
	settings := &mockSettingsService{
		statsFn: func(_ context.Context, userID string) (models.VaultStats, error) {
			assert.Equal(t, testUserID, userID)
			return models.VaultStats{
				TotalItems:      2,
				ItemsByType:     []models.TypeCount{{Type: models.ItemPassword, Count: 2}},
				ItemsByCategory: []models.CategoryCount{},
				RecentActivity:  []models.ActionCount{{Action: models.AuditLoginSuccess, Count: 4}},
			}, nil
		},
	}

	rec := doRequest(t, newTestSettingsHandler(nil, settings), http.MethodGet, "/api/settings/stats", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"totalItems": 2,
		"itemsByType": [{"type": "password", "count": 2}],
		"itemsByCategory": [],
		"recentActivity": [{"action": "LOGIN_SUCCESS", "count": 4}]
	}`, rec.Body.String())
}

func TestDeleteAccount(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		auth := &mockAuthService{
			deleteAccountFn: func(_ context.Context, userID string, req models.DeleteAccountRequest, _ models.ClientInfo) error {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, "master password 1", req.ConfirmPassword)
				return nil
			},
		}

		rec := doRequest(t, newTestSettingsHandler(auth, &mockSettingsService{}), http.MethodDelete, "/api/settings/account",
			`{"confirmPassword":"master password 1"}`, testToken)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, app.MsgAccountDeleted, decodeBody[models.MessageResponse](t, rec).Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		auth := &mockAuthService{
			deleteAccountFn: func(context.Context, string, models.DeleteAccountRequest, models.ClientInfo) error {
				return service.ErrCurrentPasswordIncorrect
			},
		}

		rec := doRequest(t, newTestSettingsHandler(auth, &mockSettingsService{}), http.MethodDelete, "/api/settings/account",
			`{"confirmPassword":"nope"}`, testToken)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgCurrentPasswordIncorrect, decodeBody[models.ErrorResponse](t, rec).Error)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := doRequest(t, newTestSettingsHandler(&mockAuthService{}, &mockSettingsService{}), http.MethodDelete, "/api/settings/account", "", testToken)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
