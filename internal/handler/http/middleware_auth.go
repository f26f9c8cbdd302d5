package http

import (
	"net/http"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/utils"
)

// auth is an HTTP middleware that enforces session-bound token
// authentication.
//
// The bearer token from the "Authorization" header is checked by
// AuthService.Authenticate, which accepts it only while its session row
// exists. On success the user and session ids are stored in the request
// context via [utils.WithAuth]. Every rejection answers 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		token, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Debug().Str("user_id", token.UserID).Msg("request authenticated")
		ctx := utils.WithAuth(r.Context(), token.UserID, token.SessionID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
