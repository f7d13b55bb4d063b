package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

func TestCategoryService(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCategoryService(repository.NewGormStore(db))
	ctx := context.Background()
	testhelpers.CreateTestRecipe(t, db, "Pancakes", []string{"flour"}, models.CategoryBreakfast)
	testhelpers.CreateTestRecipe(t, db, "Curry", []string{"rice"}, models.CategoryDinner)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	details, err := svc.GetCategoryByName(ctx, models.CategoryBreakfast)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBreakfast, details.Category.Name)
	require.Len(t, details.Recipes, 1)
	assert.Equal(t, "Pancakes", details.Recipes[0].Name)

	_, err = svc.GetCategoryByName(ctx, "Brunch")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetOrCreateCategory(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCategoryService(repository.NewGormStore(db))
	ctx := context.Background()

	existing, err := svc.GetOrCreateCategory(ctx, models.CategoryLunch)
	require.NoError(t, err)
	again, err := svc.GetOrCreateCategory(ctx, " "+models.CategoryLunch+" ")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)

	created, err := svc.GetOrCreateCategory(ctx, "Dessert")
	require.NoError(t, err)
	assert.Equal(t, "Dessert", created.Name)

	_, err = svc.GetOrCreateCategory(ctx, "")
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
}
