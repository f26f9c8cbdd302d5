package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/store"
)

// SessionJanitor periodically deletes expired sessions.
type SessionJanitor struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

func NewSessionJanitor(sessions store.SessionRepository, interval time.Duration, log *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run starts the cleanup loop in a goroutine. A non-positive interval
// disables the janitor.
func (j *SessionJanitor) Run(ctx context.Context) {
	if j.interval <= 0 {
		j.logger.Info().Msg("session janitor disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				j.logger.Debug().Msg("session janitor stopped")
				return
			case <-ticker.C:
				j.Purge(ctx)
			}
		}
	}()
}

// Purge runs one cleanup pass and returns the number of removed sessions.
func (j *SessionJanitor) Purge(ctx context.Context) int64 {
	removed, err := j.sessions.DeleteExpiredSessions(ctx, j.now())
	if err != nil {
		j.logger.Err(err).Str("func", "SessionJanitor.Purge").Msg("error deleting expired sessions")
		return 0
	}
	if removed > 0 {
		j.logger.Info().Int64("removed", removed).Msg("expired sessions deleted")
	}
	return removed
}
