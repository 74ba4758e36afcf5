package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
)

// CategoryService handles the effective category list
type CategoryService struct {
	categoryStore CategoryStore
	postStore     PostStore
	logger        zerolog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryStore CategoryStore, postStore PostStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categoryStore: categoryStore,
		postStore:     postStore,
		logger:        logger.With().Str("service", "category").Logger(),
	}
}

// List returns the effective category list: the default set, then explicitly
// registered names, then any further values observed on posts. The admin
// sentinel never appears.
func (s *CategoryService) List(ctx context.Context) ([]string, error) {
	registered, err := s.categoryStore.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	observed, err := s.postStore.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, group := range [][]string{models.DefaultCategories, registered, observed} {
		for _, name := range group {
			if name == models.CategoryAdminSentinel || seen[name] {
				continue
			}
			seen[name] = true
			categories = append(categories, name)
		}
	}

	return categories, nil
}

// Create registers a category name explicitly
func (s *CategoryService) Create(ctx context.Context, name, createdBy string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrValidationFailed
	}
	if strings.EqualFold(name, models.CategoryAdminSentinel) {
		return nil, apperrors.ErrCategoryReserved
	}

	category := &models.Category{
		Name:      name,
		CreatedBy: createdBy,
	}
	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", name).Str("uid", createdBy).Msg("Category registered")
	return category, nil
}
