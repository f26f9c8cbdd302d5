// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/models"
)

const (
	vaultItemsTable      = "vault_items"
	passwordHistoryTable = "password_history"
)

var vaultItemColumns = []string{
	"id", "user_id", "item_type", "title_encrypted", "data_encrypted", "notes_encrypted",
	"url", "is_favorite", "last_used", "created_at", "updated_at", "deleted_at", "category_id",
}

// vaultRepository is the SQL implementation of [VaultRepository]. It only
// ever sees ciphertext envelopes; nothing here can decrypt them.
type vaultRepository struct {
	db     *DB
	ids    utils.IDGenerator
	logger *logger.Logger
	now    func() time.Time
}

// NewVaultRepository constructs a [VaultRepository] backed by db. ids
// generates the identifiers of password history rows.
func NewVaultRepository(db *DB, ids utils.IDGenerator, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		ids:    ids,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultItem(row rowScanner) (models.VaultItem, error) {
	var item models.VaultItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Type,
		&item.Title,
		&item.Data,
		&item.Notes,
		&item.URL,
		&item.IsFavorite,
		&item.LastUsed,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.DeletedAt,
		&item.CategoryID,
	)
	return item, err
}

// CreateItem inserts a new item with server-side timestamps.
func (r *vaultRepository) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	item.CreatedAt, item.UpdatedAt = now, now

	query, args, err := r.db.Builder().
		Insert(vaultItemsTable).
		Columns("id", "user_id", "item_type", "title_encrypted", "data_encrypted", "notes_encrypted", "url", "is_favorite", "created_at", "updated_at", "category_id").
		Values(item.ID, item.UserID, item.Type, item.Title, item.Data, item.Notes, item.URL, item.IsFavorite, item.CreatedAt, item.UpdatedAt, item.CategoryID).
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.CreateItem").
			Str("user_id", item.UserID).
			Msg("error inserting vault item")
		if ClassifyError(err) == ForeignKeyViolation {
			return models.VaultItem{}, ErrNoUserWasFound
		}
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

// ListItems returns the live items of a user, most recently updated first.
func (r *vaultRepository) ListItems(ctx context.Context, filter models.VaultItemFilter) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	where := sq.Eq{"user_id": filter.UserID, "deleted_at": nil}
	if filter.Type != nil {
		where["item_type"] = *filter.Type
	}
	if filter.CategoryID != nil {
		where["category_id"] = *filter.CategoryID
	}
	if filter.FavoritesOnly {
		where["is_favorite"] = true
	}

	query, args, err := r.db.Builder().
		Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(where).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.ListItems").
			Str("user_id", filter.UserID).
			Msg("failed to execute query for listing vault items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.VaultItem, 0, 32)
	for rows.Next() {
		item, scanErr := scanVaultItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*vaultRepository.ListItems").
				Str("user_id", filter.UserID).
				Msg("failed to scan vault item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// GetItem stamps last_used and returns the item.
func (r *vaultRepository) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	var item models.VaultItem

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := r.db.Builder().
			Update(vaultItemsTable).
			Set("last_used", r.now()).
			Where(liveItem(userID, itemID)).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if err = expectAffected(res, ErrVaultItemNotFound); err != nil {
			return err
		}

		item, err = r.selectItem(ctx, tx, userID, itemID)
		return err
	})
	if err != nil {
		return models.VaultItem{}, err
	}

	return item, nil
}

// UpdateItem applies the non-nil fields of update. A changed data
// ciphertext moves the previous one into password history, which is
// trimmed to [models.PasswordHistoryLimit] entries.
func (r *vaultRepository) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	if update.IsEmpty() {
		return models.VaultItem{}, ErrNothingToUpdate
	}

	log := logger.FromContext(ctx)
	var item models.VaultItem

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		current, err := r.selectItem(ctx, tx, update.UserID, update.ID)
		if err != nil {
			return err
		}

		now := r.now()
		if update.Data != nil && *update.Data != current.Data {
			if err = r.appendHistory(ctx, tx, current, now); err != nil {
				return err
			}
		}

		b := r.db.Builder().
			Update(vaultItemsTable).
			Set("updated_at", now).
			Where(liveItem(update.UserID, update.ID))
		if update.Type != nil {
			b = b.Set("item_type", *update.Type)
		}
		if update.Title != nil {
			b = b.Set("title_encrypted", *update.Title)
		}
		if update.Data != nil {
			b = b.Set("data_encrypted", *update.Data)
		}
		if update.Notes != nil {
			// "" clears the notes
			var notes any
			if *update.Notes != "" {
				notes = *update.Notes
			}
			b = b.Set("notes_encrypted", notes)
		}
		if update.URL != nil {
			b = b.Set("url", *update.URL)
		}
		if update.IsFavorite != nil {
			b = b.Set("is_favorite", *update.IsFavorite)
		}
		if update.CategoryID != nil {
			var category any
			if *update.CategoryID != "" {
				category = *update.CategoryID
			}
			b = b.Set("category_id", category)
		}

		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		item, err = r.selectItem(ctx, tx, update.UserID, update.ID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.UpdateItem").
			Str("item_id", update.ID).
			Msg("error updating vault item")
		return models.VaultItem{}, err
	}

	return item, nil
}

// DeleteItem sets deleted_at; the row stays until the user is removed.
func (r *vaultRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	now := r.now()

	query, args, err := r.db.Builder().
		Update(vaultItemsTable).
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(liveItem(userID, itemID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*vaultRepository.DeleteItem").
			Str("item_id", itemID).
			Msg("error deleting vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrVaultItemNotFound)
}

// ListHistory returns previous data ciphertexts of a live item.
func (r *vaultRepository) ListHistory(ctx context.Context, userID, itemID string, limit int) ([]models.PasswordHistoryEntry, error) {
	if _, err := r.selectItem(ctx, r.db, userID, itemID); err != nil {
		return nil, err
	}

	query, args, err := r.db.Builder().
		Select("id", "vault_item_id", "password_encrypted", "changed_at").
		From(passwordHistoryTable).
		Where(sq.Eq{"vault_item_id": itemID}).
		OrderBy("changed_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	history := make([]models.PasswordHistoryEntry, 0, limit)
	for rows.Next() {
		var h models.PasswordHistoryEntry
		if err = rows.Scan(&h.ID, &h.ItemID, &h.Data, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		history = append(history, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return history, nil
}

func (r *vaultRepository) selectItem(ctx context.Context, db DBTX, userID, itemID string) (models.VaultItem, error) {
	query, args, err := r.db.Builder().
		Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(liveItem(userID, itemID)).
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanVaultItem(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (r *vaultRepository) appendHistory(ctx context.Context, tx DBTX, current models.VaultItem, now time.Time) error {
	query, args, err := r.db.Builder().
		Insert(passwordHistoryTable).
		Columns("id", "vault_item_id", "password_encrypted", "changed_at").
		Values(r.ids.Generate(), current.ID, current.Data, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = r.db.Builder().
		Delete(passwordHistoryTable).
		Where(sq.Eq{"vault_item_id": current.ID}).
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM password_history WHERE vault_item_id = ? ORDER BY changed_at DESC, id DESC LIMIT ?)",
			current.ID, models.PasswordHistoryLimit,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// liveItem matches a non-deleted item owned by userID.
func liveItem(userID, itemID string) sq.Eq {
	return sq.Eq{"id": itemID, "user_id": userID, "deleted_at": nil}
}

// CountItemsByType groups the live items of a user by type.
func (r *vaultRepository) CountItemsByType(ctx context.Context, userID string) ([]models.TypeCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("item_type", "COUNT(*)").
		From(vaultItemsTable).
		Where(sq.Eq{"user_id": userID, "deleted_at": nil}).
		GroupBy("item_type").
		OrderBy("item_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.CountItemsByType").
			Str("user_id", userID).
			Msg("failed to count vault items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make([]models.TypeCount, 0, 4)
	for rows.Next() {
		var c models.TypeCount
		if err = rows.Scan(&c.Type, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}
