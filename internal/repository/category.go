package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
)

type gormCategoryRepository struct {
	db *gorm.DB
}

func (r *gormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit("Recipes").Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *gormCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *gormCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		Take(&category).Error
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// FindByIDs returns the categories matching ids. Unknown ids are ignored.
func (r *gormCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}
	var categories []*models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", idStrings(ids)).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (r *gormCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
