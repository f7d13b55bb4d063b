package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealplanner/backend/internal/models"
)

const recipeCategoriesTable = "recipe_categories"

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type gormRecipeRepository struct {
	db *gorm.DB
}

// Create inserts the recipe row only; categories are attached separately.
func (r *gormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

func (r *gormRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	result := r.db.WithContext(ctx).Model(&models.Recipe{ID: recipe.ID}).
		Select("name", "directions", "ingredients", "servings", "prep_time", "cook_time", "public", "image_url", "updated_at").
		Updates(recipe)
	if result.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Preload("Categories").First(&recipe, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *gormRecipeRepository) ExistsByName(ctx context.Context, name string, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("name = ?", name)
	if exclude != nil {
		query = query.Where("id <> ?", exclude.String())
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check recipe name: %w", err)
	}
	return count > 0, nil
}

// List returns every recipe ordered by name.
func (r *gormRecipeRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := r.db.WithContext(ctx).Preload("Categories").Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (r *gormRecipeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Order("name ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipe ids: %w", err)
	}
	return ids, nil
}

// SearchByName matches recipes whose name contains terms, ignoring case.
func (r *gormRecipeRepository) SearchByName(ctx context.Context, terms string) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	like := "%" + likeEscaper.Replace(strings.ToLower(terms)) + "%"
	if err := r.db.WithContext(ctx).Preload("Categories").
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, like).
		Order("name ASC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

func (r *gormRecipeRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Recipe, error) {
	members := r.db.Table(recipeCategoriesTable).Select("recipe_id").Where("category_id = ?", categoryID.String())

	var recipes []*models.Recipe
	if err := r.db.WithContext(ctx).Preload("Categories").
		Where("id IN (?)", members).
		Order("name ASC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes by category: %w", err)
	}
	return recipes, nil
}

// AttachCategories adds membership rows; rows that already exist are left alone.
func (r *gormRecipeRepository) AttachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(categoryIDs))
	for _, id := range idStrings(categoryIDs) {
		rows = append(rows, map[string]interface{}{
			"recipe_id":   recipeID.String(),
			"category_id": id,
		})
	}
	if err := r.db.WithContext(ctx).Table(recipeCategoriesTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to attach categories: %w", err)
	}
	return nil
}

func (r *gormRecipeRepository) DetachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM "+recipeCategoriesTable+" WHERE recipe_id = ? AND category_id IN ?", recipeID.String(), idStrings(categoryIDs)).
		Error; err != nil {
		return fmt.Errorf("failed to detach categories: %w", err)
	}
	return nil
}
