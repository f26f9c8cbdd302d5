package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/lockbox/internal/app"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first match wins. Anything not
// listed is a 500 with a generic message.
var errorMappings = []errorMapping{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{store.ErrNothingToUpdate, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrAccountLocked, http.StatusLocked, app.MsgAccountLocked},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrCurrentPasswordIncorrect, http.StatusUnauthorized, app.MsgCurrentPasswordIncorrect},
	{service.ErrSessionRevoked, http.StatusUnauthorized, app.MsgSessionRevoked},
	{store.ErrNoUserWasFound, http.StatusUnauthorized, app.MsgSessionRevoked},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
	{store.ErrVaultItemNotFound, http.StatusNotFound, app.MsgItemNotFound},
	{store.ErrSessionNotFound, http.StatusNotFound, app.MsgSessionNotFound},
	{store.ErrCategoryNotFound, http.StatusNotFound, app.MsgCategoryNotFound},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError answers with the JSON error body for err. Server faults are
// logged at error level; client faults at debug level.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, message := statusFromError(err)

	body := models.ErrorResponse{Error: message}
	var locked *service.AccountLockedError
	if errors.As(err, &locked) {
		unlockAt := locked.UnlockAt
		body.UnlockAt = &unlockAt
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, body, status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}

// writeJSON answers with v and logs a failed write.
func writeJSON(w http.ResponseWriter, r *http.Request, v any, status int) {
	if _, err := utils.WriteJSON(w, v, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
