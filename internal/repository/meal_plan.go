package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealplanner/backend/internal/models"
)

type gormMealPlanRepository struct {
	db *gorm.DB
}

func (r *gormMealPlanRepository) Create(ctx context.Context, plan *models.MealPlan) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create meal plan: %w", err)
	}
	return nil
}

func (r *gormMealPlanRepository) preloaded(ctx context.Context) *gorm.DB {
	query := r.db.WithContext(ctx)
	for _, association := range models.SlotAssociations {
		query = query.Preload(association)
	}
	return query
}

func (r *gormMealPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := r.preloaded(ctx).First(&plan, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

// ListBySavedBy returns the plans a user saved, oldest first.
func (r *gormMealPlanRepository) ListBySavedBy(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	var plans []*models.MealPlan
	if err := r.preloaded(ctx).
		Where("saved_by_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}
