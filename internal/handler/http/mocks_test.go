package http

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/models"
)

type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest, client models.ClientInfo) (models.AuthResponse, error)
	loginFn          func(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.AuthResponse, error)
	logoutFn         func(ctx context.Context, userID, sessionID string, client models.ClientInfo) error
	verifyFn         func(ctx context.Context, userID string) (models.UserInfo, error)
	changePasswordFn func(ctx context.Context, userID string, req models.ChangePasswordRequest, client models.ClientInfo) error
	authenticateFn   func(ctx context.Context, tokenString string) (models.Token, error)
	deleteAccountFn  func(ctx context.Context, userID string, req models.DeleteAccountRequest, client models.ClientInfo) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest, client models.ClientInfo) (models.AuthResponse, error) {
	return m.registerFn(ctx, req, client)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.AuthResponse, error) {
	return m.loginFn(ctx, req, client)
}

func (m *mockAuthService) Logout(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	return m.logoutFn(ctx, userID, sessionID, client)
}

func (m *mockAuthService) Verify(ctx context.Context, userID string) (models.UserInfo, error) {
	return m.verifyFn(ctx, userID)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest, client models.ClientInfo) error {
	return m.changePasswordFn(ctx, userID, req, client)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, userID string, req models.DeleteAccountRequest, client models.ClientInfo) error {
	return m.deleteAccountFn(ctx, userID, req, client)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	if m.authenticateFn == nil {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return m.authenticateFn(ctx, tokenString)
}

type mockVaultService struct {
	listItemsFn   func(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error)
	getItemFn     func(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	createItemFn  func(ctx context.Context, userID string, req models.VaultItemRequest) (models.VaultItem, error)
	updateItemFn  func(ctx context.Context, userID, itemID string, patch models.VaultItemPatch) (models.VaultItem, error)
	deleteItemFn  func(ctx context.Context, userID, itemID string) error
	listHistoryFn func(ctx context.Context, userID, itemID string) ([]models.PasswordHistoryEntry, error)

	listCategoriesFn func(ctx context.Context, userID string) ([]models.Category, error)
	createCategoryFn func(ctx context.Context, userID string, req models.CategoryRequest) (models.Category, error)
}

func (m *mockVaultService) ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error) {
	return m.listItemsFn(ctx, filter)
}

func (m *mockVaultService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	return m.getItemFn(ctx, userID, itemID)
}

func (m *mockVaultService) CreateItem(ctx context.Context, userID string, req models.VaultItemRequest) (models.VaultItem, error) {
	return m.createItemFn(ctx, userID, req)
}

func (m *mockVaultService) UpdateItem(ctx context.Context, userID, itemID string, patch models.VaultItemPatch) (models.VaultItem, error) {
	return m.updateItemFn(ctx, userID, itemID, patch)
}

func (m *mockVaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return m.deleteItemFn(ctx, userID, itemID)
}

func (m *mockVaultService) ListHistory(ctx context.Context, userID, itemID string) ([]models.PasswordHistoryEntry, error) {
	return m.listHistoryFn(ctx, userID, itemID)
}

func (m *mockVaultService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return m.listCategoriesFn(ctx, userID)
}

func (m *mockVaultService) CreateCategory(ctx context.Context, userID string, req models.CategoryRequest) (models.Category, error) {
	return m.createCategoryFn(ctx, userID, req)
}

type mockSettingsService struct {
	getPreferencesFn    func(ctx context.Context, userID string) (models.Preferences, error)
	updatePreferencesFn func(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error)
	listSessionsFn      func(ctx context.Context, userID string) ([]models.Session, error)
	revokeSessionFn     func(ctx context.Context, userID, sessionID string, client models.ClientInfo) error
	auditLogFn          func(ctx context.Context, query models.AuditLogQuery) (models.AuditLogPage, error)
	statsFn             func(ctx context.Context, userID string) (models.VaultStats, error)
}

func (m *mockSettingsService) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	return m.getPreferencesFn(ctx, userID)
}

func (m *mockSettingsService) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
	return m.updatePreferencesFn(ctx, userID, prefs)
}

func (m *mockSettingsService) ListSessions(ctx context.Context, userID string) ([]models.Session, error) {
	return m.listSessionsFn(ctx, userID)
}

func (m *mockSettingsService) RevokeSession(ctx context.Context, userID, sessionID string, client models.ClientInfo) error {
	return m.revokeSessionFn(ctx, userID, sessionID, client)
}

func (m *mockSettingsService) AuditLog(ctx context.Context, query models.AuditLogQuery) (models.AuditLogPage, error) {
	return m.auditLogFn(ctx, query)
}

func (m *mockSettingsService) Stats(ctx context.Context, userID string) (models.VaultStats, error) {
	return m.statsFn(ctx, userID)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

const (
	testUserID    = "user-1"
	testSessionID = "session-1"
	testToken     = "good-token"
)

// newTestHandler builds a Handler whose auth middleware accepts testToken.
func newTestHandler(auth *mockAuthService, vault *mockVaultService) *Handler {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if auth.authenticateFn == nil {
		auth.authenticateFn = func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != testToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{
				RegisteredClaims: jwt.RegisteredClaims{ID: testSessionID, Subject: testUserID},
				UserID:           testUserID,
			}, nil
		}
	}
	if vault == nil {
		vault = &mockVaultService{}
	}

	services := &service.Services{
		AuthService:      auth,
		VaultService:     vault,
		GeneratorService: service.NewGeneratorService(),
		SettingsService:  &mockSettingsService{},
		AppInfoService:   &mockAppInfoService{version: "1.2.3"},
	}
	return NewHandler(services, time.Second, logger.Nop())
}

// newTestSettingsHandler is newTestHandler with the settings service replaced.
func newTestSettingsHandler(auth *mockAuthService, settings *mockSettingsService) *Handler {
	h := newTestHandler(auth, nil)
	h.services.SettingsService = settings
	return h
}
