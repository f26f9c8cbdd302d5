package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/models"
)

type auditRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{db: db, logger: logger}
}

// RecordEvent appends one audit row. Details are stored as a JSON object.
func (r *auditRepository) RecordEvent(ctx context.Context, event models.AuditEvent) error {
	details := []byte("{}")
	if len(event.Details) > 0 {
		var err error
		if details, err = json.Marshal(event.Details); err != nil {
			return fmt.Errorf("error encoding audit details: %w", err)
		}
	}

	var userID *string
	if event.UserID != "" {
		userID = &event.UserID
	}

	query, args, err := r.db.Builder().
		Insert(event.TableName()).
		Columns("id", "user_id", "action", "ip_address", "user_agent", "details", "created_at").
		Values(event.ID, userID, string(event.Action), event.IPAddress, event.UserAgent, string(details), event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*auditRepository.RecordEvent").
			Str("action", string(event.Action)).
			Msg("error inserting audit event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListEvents returns one page of a user's events, newest first.
func (r *auditRepository) ListEvents(ctx context.Context, q models.AuditLogQuery) ([]models.AuditEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "user_id", "action", "ip_address", "user_agent", "details", "created_at").
		From(models.AuditEvent{}.TableName()).
		Where(sq.Eq{"user_id": q.UserID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListEvents").Str("user_id", q.UserID).Msg("error listing audit events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.AuditEvent, 0, q.Limit)
	for rows.Next() {
		var (
			e       models.AuditEvent
			userID  sql.NullString
			action  string
			details string
		)
		if err = rows.Scan(&e.ID, &userID, &action, &e.IPAddress, &e.UserAgent, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.UserID = userID.String
		e.Action = models.AuditAction(action)
		if details != "" && details != "{}" {
			if err = json.Unmarshal([]byte(details), &e.Details); err != nil {
				log.Warn().Err(err).Str("event_id", e.ID).Msg("undecodable audit details")
			}
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

// CountEvents returns the size of a user's audit log.
func (r *auditRepository) CountEvents(ctx context.Context, userID string) (int, error) {
	query, args, err := r.db.Builder().
		Select("COUNT(*)").
		From(models.AuditEvent{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.CountEvents").Msg("error counting audit events")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

// CountActionsSince groups a user's events after since by action.
func (r *auditRepository) CountActionsSince(ctx context.Context, userID string, since time.Time) ([]models.ActionCount, error) {
	query, args, err := r.db.Builder().
		Select("action", "COUNT(*)").
		From(models.AuditEvent{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"created_at": since}).
		GroupBy("action").
		OrderBy("action").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.CountActionsSince").Msg("error counting audit actions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make([]models.ActionCount, 0, 8)
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err = rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts = append(counts, models.ActionCount{Action: models.AuditAction(action), Count: n})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}
