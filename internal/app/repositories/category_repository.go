package repositories

import (
	"context"
	"fmt"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/dberrors"
	"github.com/conghanh/luanho/internal/pkg/logger"
)

// CategoryRepository handles database operations for registered categories
type CategoryRepository struct {
	db *db.PostgresDB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *db.PostgresDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create registers a new category name
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, created_by)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query, category.Name, category.CreatedBy).Scan(&category.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "categories_pkey") {
			return apperrors.ErrCategoryExists
		}
		logger.Error().Err(err).Str("category", category.Name).Msg("Error executing create category query")
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// ListNames retrieves all registered category names
func (r *CategoryRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `SELECT name FROM categories ORDER BY created_at ASC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list categories query")
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return names, nil
}
