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
	"github.com/MKhiriev/lockbox/models"
)

const categoriesTable = "categories"

type categoryRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewCategoryRepository constructs a [CategoryRepository] backed by db.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateCategory appends the category after the user's last one.
func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)
	category.CreatedAt = r.now()

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := r.db.Builder().
			Select("COALESCE(MAX(sort_order), -1) + 1").
			From(categoriesTable).
			Where(sq.Eq{"user_id": category.UserID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err = tx.QueryRowContext(ctx, query, args...).Scan(&category.SortOrder); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		query, args, err = r.db.Builder().
			Insert(categoriesTable).
			Columns("id", "user_id", "name", "icon", "color", "sort_order", "created_at").
			Values(category.ID, category.UserID, category.Name, category.Icon, category.Color, category.SortOrder, category.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if ClassifyError(err) == ForeignKeyViolation {
				return ErrNoUserWasFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*categoryRepository.CreateCategory").
			Str("user_id", category.UserID).
			Msg("error creating category")
		return models.Category{}, err
	}

	return category, nil
}

// ListCategories returns the categories of a user in sort order, each with
// the number of its live items.
func (r *categoryRepository) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("c.id", "c.user_id", "c.name", "c.icon", "c.color", "c.sort_order", "c.created_at", "COUNT(v.id)").
		From(categoriesTable + " c").
		LeftJoin(vaultItemsTable + " v ON v.category_id = c.id AND v.deleted_at IS NULL").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("c.id", "c.user_id", "c.name", "c.icon", "c.color", "c.sort_order", "c.created_at").
		OrderBy("c.sort_order", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*categoryRepository.ListCategories").
			Str("user_id", userID).
			Msg("failed to execute query for listing categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 8)
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.SortOrder, &c.CreatedAt, &c.ItemCount); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// GetCategory returns ErrCategoryNotFound for unknown ids and for categories
// of other users.
func (r *categoryRepository) GetCategory(ctx context.Context, userID, categoryID string) (models.Category, error) {
	query, args, err := r.db.Builder().
		Select("id", "user_id", "name", "icon", "color", "sort_order", "created_at").
		From(categoriesTable).
		Where(sq.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var c models.Category
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.SortOrder, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryRepository.GetCategory").Msg("error scanning category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c, nil
}
