package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/models"
)

// RunMigrations creates or updates the schema for every model.
func RunMigrations(db *gorm.DB) error {
	logging.Info().Str("dialect", db.Dialector.Name()).Msg("Running auto-migration")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.MealPlan{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedCategories inserts each default category whose name is not already present.
func SeedCategories(ctx context.Context, db *gorm.DB) error {
	for _, name := range models.DefaultCategories {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %s: %w", name, err)
		}
		if count > 0 {
			logging.Debug().Str("category", name).Msg("Skipping category (already present)")
			continue
		}
		if err := db.WithContext(ctx).Omit("Recipes").Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		logging.Info().Str("category", name).Msg("Seeded category")
	}
	return nil
}
