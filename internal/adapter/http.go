package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
	"github.com/go-resty/resty/v2"
)

const (
	authPrefix  = "/api/auth"
	vaultPrefix = "/api/vault"
	itemPath    = vaultPrefix + "/items/{id}"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs to /api/auth/register and
// stores the token of the new session.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, authPrefix+"/register", req)
}

// Login implements [ServerAdapter]. It POSTs to /api/auth/login and stores
// the token of the new session.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, authPrefix+"/login", req)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("auth request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}
	if authResp.Token == "" || authResp.EncryptionKey == "" {
		return models.AuthResponse{}, fmt.Errorf("auth request %s: incomplete response", path)
	}

	h.SetToken(authResp.Token)
	h.logger.Debug().Str("func", "httpServerAdapter.authenticate").Str("user_id", authResp.User.ID).Msg("authenticated")
	return authResp, nil
}

// Logout implements [ServerAdapter]. The token is forgotten even when the
// server call fails.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	defer h.SetToken("")

	resp, err := req.Post(authPrefix + "/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// Verify implements [ServerAdapter].
func (h *httpServerAdapter) Verify(ctx context.Context) (models.UserInfo, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserInfo{}, err
	}

	var verifyResp models.VerifyResponse
	resp, err := req.SetResult(&verifyResp).Get(authPrefix + "/verify")
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserInfo{}, err
	}
	return verifyResp.User, nil
}

// ChangePassword implements [ServerAdapter]. The server revokes every
// session on success, so the stored token is dropped.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, body models.ChangePasswordRequest) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(authPrefix + "/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// ListItems implements [ServerAdapter]. It GETs /api/vault/items with the
// optional type and favorites query parameters.
func (h *httpServerAdapter) ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Type != nil {
		req.SetQueryParam("type", string(*filter.Type))
	}
	if filter.FavoritesOnly {
		req.SetQueryParam("favorites", "true")
	}

	var listResp models.VaultItemsResponse
	resp, err := req.SetResult(&listResp).Get(vaultPrefix + "/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return listResp.Items, nil
}

// GetItem implements [ServerAdapter].
func (h *httpServerAdapter) GetItem(ctx context.Context, itemID string) (models.VaultItem, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VaultItem{}, err
	}

	var item models.VaultItem
	resp, err := req.SetPathParam("id", itemID).SetResult(&item).Get(itemPath)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}
	return item, nil
}

// CreateItem implements [ServerAdapter].
func (h *httpServerAdapter) CreateItem(ctx context.Context, body models.VaultItemRequest) (models.VaultItem, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VaultItem{}, err
	}

	var item models.VaultItem
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&item).
		Post(vaultPrefix + "/items")
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}
	return item, nil
}

// UpdateItem implements [ServerAdapter]. Only non-nil patch fields are sent.
func (h *httpServerAdapter) UpdateItem(ctx context.Context, itemID string, patch models.VaultItemPatch) (models.VaultItem, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VaultItem{}, err
	}

	var item models.VaultItem
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", itemID).
		SetBody(patch).
		SetResult(&item).
		Put(itemPath)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}
	return item, nil
}

// DeleteItem implements [ServerAdapter].
func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("id", itemID).Delete(itemPath)
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}
	return mapHTTPError(resp)
}

// ListHistory implements [ServerAdapter].
func (h *httpServerAdapter) ListHistory(ctx context.Context, itemID string) ([]models.PasswordHistoryEntry, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var historyResp models.PasswordHistoryResponse
	resp, err := req.SetPathParam("id", itemID).SetResult(&historyResp).Get(itemPath + "/history")
	if err != nil {
		return nil, fmt.Errorf("list history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return historyResp.History, nil
}

// GeneratePassword implements [ServerAdapter].
func (h *httpServerAdapter) GeneratePassword(ctx context.Context, body models.GeneratePasswordRequest) (models.GeneratePasswordResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.GeneratePasswordResponse{}, err
	}

	var genResp models.GeneratePasswordResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&genResp).
		Post(vaultPrefix + "/generate-password")
	if err != nil {
		return models.GeneratePasswordResponse{}, fmt.Errorf("generate password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GeneratePasswordResponse{}, err
	}
	return genResp, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
