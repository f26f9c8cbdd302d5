package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lockbox/internal/app"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := filterFromQuery(r, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.services.VaultService.ListItems(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.VaultItemsResponse{Items: items}, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.GetItem(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VaultItemRequest
	if err = decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.CreateItem(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.VaultItemPatch
	if err = decodeJSON(w, r, &patch, false); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VaultService.DeleteItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: app.MsgItemDeleted}, http.StatusOK)
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := h.services.VaultService.ListHistory(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.PasswordHistoryResponse{History: history}, http.StatusOK)
}

func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePasswordRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.GeneratorService.Generate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, resp, http.StatusOK)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	categories, err := h.services.VaultService.ListCategories(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.CategoriesResponse{Categories: categories}, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, _, err := authFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CategoryRequest
	if err = decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.services.VaultService.CreateCategory(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, category, http.StatusCreated)
}

// filterFromQuery reads ?type=, ?categoryId= and ?favorites= from the request.
func filterFromQuery(r *http.Request, userID string) (models.VaultItemFilter, error) {
	filter := models.VaultItemFilter{UserID: userID}
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		itemType := models.ItemType(raw)
		filter.Type = &itemType
	}

	if raw := q.Get("categoryId"); raw != "" {
		filter.CategoryID = &raw
	}

	if raw := q.Get("favorites"); raw != "" {
		favorites, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: favorites must be a boolean", service.ErrInvalidDataProvided)
		}
		filter.FavoritesOnly = favorites
	}

	return filter, nil
}
