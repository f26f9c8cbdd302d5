package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/lockbox/internal/logger"
)

// withLogging writes one access log line per request. Bodies are never
// logged since they carry passwords and keys.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("uri", r.URL.Path).
			Str("method", r.Method).
			Str("remote_ip", clientInfo(r).IPAddress).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
