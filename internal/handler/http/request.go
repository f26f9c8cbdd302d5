package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

// decodeJSON reads a size-capped JSON body into dst. With allowEmpty an
// empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

// clientInfo describes the caller for sessions and audit events. RealIP
// has already replaced RemoteAddr when a proxy header was present.
func clientInfo(r *http.Request) models.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return models.ClientInfo{IPAddress: ip, UserAgent: r.UserAgent()}
}

// authFromRequest returns the user and session set by the auth middleware.
func authFromRequest(r *http.Request) (userID, sessionID string, err error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", "", ErrNoAuthInContext
	}
	sessionID, ok = utils.GetSessionIDFromContext(r.Context())
	if !ok {
		return "", "", ErrNoAuthInContext
	}
	return userID, sessionID, nil
}
