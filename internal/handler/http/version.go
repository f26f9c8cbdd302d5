package http

import (
	"net/http"

	"github.com/MKhiriev/lockbox/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())
	writeJSON(w, r, models.VersionResponse{Version: version}, http.StatusOK)
}
