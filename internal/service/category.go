package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/repository"
)

// CategoryDetails is a category with the recipes filed under it.
type CategoryDetails struct {
	Category *models.Category
	Recipes  []*models.Recipe
}

// CategoryService handles category operations
type CategoryService struct {
	store repository.Store
}

var _ ICategoryService = (*CategoryService)(nil)

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(store repository.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.Categories().List(ctx)
}

// GetCategoryByName looks a category up by exact name. When several share the name
// the oldest wins.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*CategoryDetails, error) {
	category, err := s.store.Categories().GetByName(ctx, name)
	if err != nil {
		return nil, notFound("category", name, err)
	}
	recipes, err := s.store.Recipes().ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryDetails{Category: category, Recipes: recipes}, nil
}

// GetOrCreateCategory returns the category named name, creating it if absent.
func (s *CategoryService) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, &ValidationError{Field: "name", Message: "is too long"}
	}

	category, err := s.store.Categories().GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	category = &models.Category{Name: name}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
