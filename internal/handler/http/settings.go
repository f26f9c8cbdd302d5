package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lockbox/internal/app"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prefs, err := h.services.SettingsService.GetPreferences(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.PreferencesResponse{Settings: prefs}, http.StatusOK)
}

// updateSettings replaces the whole document. Members missing from the body
// keep their default values.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prefs := models.DefaultPreferences()
	if err = decodeJSON(w, r, &prefs, false); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.services.SettingsService.UpdatePreferences(r.Context(), userID, prefs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.PreferencesResponse{Message: app.MsgSettingsUpdated, Settings: saved}, http.StatusOK)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sessions, err := h.services.SettingsService.ListSessions(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.SessionsResponse{Sessions: sessions}, http.StatusOK)
}

func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.SettingsService.RevokeSession(r.Context(), userID, chi.URLParam(r, "id"), clientInfo(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: app.MsgSessionRevoked}, http.StatusOK)
}

func (h *Handler) auditLog(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	query := models.AuditLogQuery{UserID: userID}
	if query.Limit, err = intParam(r, "limit"); err != nil {
		writeError(w, r, err)
		return
	}
	if query.Offset, err = intParam(r, "offset"); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.SettingsService.AuditLog(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, page, http.StatusOK)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.services.SettingsService.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, stats, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.DeleteAccountRequest
	if err = decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AuthService.DeleteAccount(r.Context(), userID, req, clientInfo(r)); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", userID).Msg("account deleted")
	writeJSON(w, r, models.MessageResponse{Message: app.MsgAccountDeleted}, http.StatusOK)
}

// intParam reads an optional integer query parameter; absent means zero.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidDataProvided, name)
	}
	return n, nil
}
