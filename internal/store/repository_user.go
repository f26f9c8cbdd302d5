package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/models"
)

var userColumns = []string{
	"id", "email", "salt", "verifier_hash", "wrapped_key",
	"failed_attempts", "locked_until", "last_login", "created_at", "updated_at",
}

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
type userRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser inserts the account and returns it with timestamps set.
//
// Error handling:
//   - unique violation on email → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	user.CreatedAt, user.UpdatedAt = now, now

	query, args, err := r.db.Builder().
		Insert(user.TableName()).
		Columns("id", "email", "salt", "verifier_hash", "wrapped_key", "failed_attempts", "created_at", "updated_at").
		Values(user.UserID, user.Email, user.Salt, user.VerifierHash, user.WrappedKey, 0, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if ClassifyError(err) == UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByEmail looks the account up by its lowercased email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

// FindUserByID looks the account up by id.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.UserID, &u.Email, &u.Salt, &u.VerifierHash, &u.WrappedKey,
		&u.FailedAttempts, &u.LockedUntil, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return u, nil
}

// RecordLoginSuccess resets the lockout state after a verified password.
func (r *userRepository) RecordLoginSuccess(ctx context.Context, userID string, at time.Time) error {
	query, args, err := r.db.Builder().
		Update(models.User{}.TableName()).
		Set("failed_attempts", 0).
		Set("locked_until", nil).
		Set("last_login", at).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.RecordLoginSuccess").Str("user_id", userID).Msg("error resetting login attempts")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrNoUserWasFound)
}

// RecordLoginFailure increments failed_attempts in the database rather than
// writing a value computed from an earlier read. The CASE sees the
// pre-update counter, hence the "+ 1".
func (r *userRepository) RecordLoginFailure(ctx context.Context, failure models.LoginFailure) (int, error) {
	b := r.db.Builder().
		Update(models.User{}.TableName()).
		Set("failed_attempts", sq.Expr("failed_attempts + 1"))
	if failure.LockAfter > 0 {
		b = b.Set("locked_until", sq.Expr(
			"CASE WHEN failed_attempts + 1 >= ? THEN ? ELSE locked_until END",
			failure.LockAfter, failure.LockUntil,
		))
	}

	query, args, err := b.
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": failure.UserID}).
		Suffix("RETURNING failed_attempts").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var attempts int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.RecordLoginFailure").Str("user_id", failure.UserID).Msg("error counting failed login")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return attempts, nil
}

// ChangeCredential swaps the credential triple, clears any lockout and
// revokes all sessions of the user. Either everything is written or nothing.
func (r *userRepository) ChangeCredential(ctx context.Context, update models.CredentialUpdate) error {
	log := logger.FromContext(ctx)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := r.db.Builder().
			Update(models.User{}.TableName()).
			Set("salt", update.Salt).
			Set("verifier_hash", update.VerifierHash).
			Set("wrapped_key", update.WrappedKey).
			Set("failed_attempts", 0).
			Set("locked_until", nil).
			Set("updated_at", r.now()).
			Where(sq.Eq{"id": update.UserID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if err = expectAffected(res, ErrNoUserWasFound); err != nil {
			return err
		}

		return deleteUserSessions(ctx, r.db.Builder(), tx, update.UserID)
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ChangeCredential").Str("user_id", update.UserID).Msg("error changing credential")
		return err
	}

	return nil
}

// DeleteUser removes the account. Sessions, items, their history and
// categories go with it through ON DELETE CASCADE; audit rows keep a NULL
// user id.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query, args, err := r.db.Builder().
		Delete(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.DeleteUser").
			Str("user_id", userID).
			Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrNoUserWasFound)
}

// GetPreferences returns the stored preferences, or the defaults when the
// user never saved any.
func (r *userRepository) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	query, args, err := r.db.Builder().
		Select("preferences").
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var raw sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Preferences{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.GetPreferences").Msg("error scanning preferences")
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	prefs := models.DefaultPreferences()
	if raw.Valid && raw.String != "" {
		if err = json.Unmarshal([]byte(raw.String), &prefs); err != nil {
			return models.Preferences{}, fmt.Errorf("error decoding preferences: %w", err)
		}
	}
	return prefs, nil
}

// UpdatePreferences replaces the stored preferences document.
func (r *userRepository) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	doc, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("error encoding preferences: %w", err)
	}

	query, args, err := r.db.Builder().
		Update(models.User{}.TableName()).
		Set("preferences", string(doc)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.UpdatePreferences").
			Str("user_id", userID).
			Msg("error updating preferences")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrNoUserWasFound)
}

// expectAffected returns notFound when the statement touched no row.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
