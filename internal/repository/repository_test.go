package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

func recipeNames(recipes []*models.Recipe) []string {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	return names
}

func TestRecipeRepositoryCreateAndGet(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		Name:        "Pancakes",
		Directions:  "Mix and fry",
		Ingredients: models.Ingredients{"flour", "egg"},
		Servings:    4,
		Public:      true,
	}
	require.NoError(t, store.Recipes().Create(ctx, recipe))
	require.NotEqual(t, uuid.Nil, recipe.ID)

	got, err := store.Recipes().GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, models.Ingredients{"flour", "egg"}, got.Ingredients)
	assert.Equal(t, 4, got.Servings)
	assert.Empty(t, got.Categories)
}

func TestRecipeRepositoryGetByIDNotFound(t *testing.T) {
	store := NewGormStore(testhelpers.SetupTestDatabase(t))

	_, err := store.Recipes().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeRepositoryExistsByName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	recipe := testhelpers.CreateTestRecipe(t, db, "Pancakes", []string{"flour"})

	exists, err := store.Recipes().ExistsByName(ctx, "Pancakes", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Recipes().ExistsByName(ctx, "pancakes", nil)
	require.NoError(t, err)
	assert.False(t, exists, "name match is exact")

	exists, err = store.Recipes().ExistsByName(ctx, "Pancakes", &recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the excluded recipe does not count")
}

func TestRecipeRepositoryListOrderedByName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.CreateTestRecipe(t, db, "Waffles", nil)
	testhelpers.CreateTestRecipe(t, db, "Apple Pie", nil)
	testhelpers.CreateTestRecipe(t, db, "Lasagne", nil)

	recipes, err := NewGormStore(db).Recipes().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Pie", "Lasagne", "Waffles"}, recipeNames(recipes))
}

func TestRecipeRepositorySearchByName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.CreateTestRecipe(t, db, "Chicken Curry", nil)
	testhelpers.CreateTestRecipe(t, db, "Curried Eggs", nil)
	testhelpers.CreateTestRecipe(t, db, "Pancakes", nil)

	recipes, err := NewGormStore(db).Recipes().SearchByName(context.Background(), "CURR")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Curry", "Curried Eggs"}, recipeNames(recipes))
}

func TestRecipeRepositorySearchMatchesWildcardsLiterally(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.CreateTestRecipe(t, db, "Pancakes", nil)
	testhelpers.CreateTestRecipe(t, db, "Omelette", nil)
	testhelpers.CreateTestRecipe(t, db, "100% Rye", nil)
	testhelpers.CreateTestRecipe(t, db, "Pan_Fried Tofu", nil)
	testhelpers.CreateTestRecipe(t, db, `Back\Slash Stew`, nil)
	repo := NewGormStore(db).Recipes()

	tests := []struct {
		terms string
		want  []string
	}{
		{"%", []string{"100% Rye"}},
		{"_", []string{"Pan_Fried Tofu"}},
		{"P_n", []string{}},
		{`\`, []string{`Back\Slash Stew`}},
		{"pan", []string{"Pan_Fried Tofu", "Pancakes"}},
	}
	for _, tt := range tests {
		t.Run(tt.terms, func(t *testing.T) {
			recipes, err := repo.SearchByName(context.Background(), tt.terms)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipeNames(recipes))
		})
	}
}

func TestRecipeRepositoryListByCategory(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.CreateTestRecipe(t, db, "Pancakes", nil, models.CategoryBreakfast, models.CategoryLunch)
	testhelpers.CreateTestRecipe(t, db, "Omelette", nil, models.CategoryBreakfast)
	testhelpers.CreateTestRecipe(t, db, "Curry", nil, models.CategoryDinner)
	breakfast := testhelpers.Category(t, db, models.CategoryBreakfast)

	recipes, err := NewGormStore(db).Recipes().ListByCategory(context.Background(), breakfast.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette", "Pancakes"}, recipeNames(recipes))
}

func TestRecipeRepositoryAttachDetachCategories(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	recipe := testhelpers.CreateTestRecipe(t, db, "Pancakes", nil, models.CategoryBreakfast)
	breakfast := testhelpers.Category(t, db, models.CategoryBreakfast)
	lunch := testhelpers.Category(t, db, models.CategoryLunch)

	require.NoError(t, store.Recipes().AttachCategories(ctx, recipe.ID, []uuid.UUID{breakfast.ID, lunch.ID}))
	got, err := store.Recipes().GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, got.Categories, 2, "attaching an existing membership is a no-op")

	require.NoError(t, store.Recipes().DetachCategories(ctx, recipe.ID, []uuid.UUID{breakfast.ID}))
	got, err = store.Recipes().GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, models.CategoryLunch, got.Categories[0].Name)

	assert.NoError(t, store.Recipes().AttachCategories(ctx, recipe.ID, nil))
	assert.NoError(t, store.Recipes().DetachCategories(ctx, recipe.ID, nil))
}

func TestRecipeRepositoryUpdate(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	recipe := testhelpers.CreateTestRecipe(t, db, "Pancakes", []string{"flour"})

	recipe.Name = "Fluffy Pancakes"
	recipe.Public = false
	recipe.Ingredients = models.Ingredients{"flour", "buttermilk"}
	require.NoError(t, store.Recipes().Update(ctx, recipe))

	got, err := store.Recipes().GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fluffy Pancakes", got.Name)
	assert.False(t, got.Public)
	assert.Equal(t, models.Ingredients{"flour", "buttermilk"}, got.Ingredients)

	missing := &models.Recipe{ID: uuid.New(), Name: "Ghost"}
	assert.ErrorIs(t, store.Recipes().Update(ctx, missing), ErrNotFound)
}

func TestCategoryRepositoryGetByNameReturnsOldest(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	seeded := testhelpers.Category(t, db, models.CategoryBreakfast)

	duplicate := &models.Category{Name: models.CategoryBreakfast, CreatedAt: seeded.CreatedAt.Add(time.Hour)}
	require.NoError(t, store.Categories().Create(ctx, duplicate))

	got, err := store.Categories().GetByName(ctx, models.CategoryBreakfast)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = store.Categories().GetByName(ctx, "breakfast")
	assert.ErrorIs(t, err, ErrNotFound, "lookup is case-sensitive")
}

func TestCategoryRepositoryFindByIDs(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	lunch := testhelpers.Category(t, db, models.CategoryLunch)

	found, err := store.Categories().FindByIDs(context.Background(), []uuid.UUID{lunch.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, lunch.ID, found[0].ID)

	found, err = store.Categories().FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMealPlanRepository(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "planner")
	other := testhelpers.CreateTestUser(t, db, "someone-else")
	pancakes := testhelpers.CreateTestRecipe(t, db, "Pancakes", []string{"flour"})
	curry := testhelpers.CreateTestRecipe(t, db, "Curry", []string{"rice"})

	plan := &models.MealPlan{SavedByID: &user.ID}
	plan.SetSlot(models.SlotBreakfast1, pancakes.ID)
	plan.SetSlot(models.SlotDinner2, curry.ID)
	require.NoError(t, store.MealPlans().Create(ctx, plan))
	require.NoError(t, store.MealPlans().Create(ctx, &models.MealPlan{SavedByID: &other.ID}))

	got, err := store.MealPlans().GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Breakfast1)
	assert.Equal(t, "Pancakes", got.Breakfast1.Name)
	require.NotNil(t, got.Dinner2)
	assert.Equal(t, "Curry", got.Dinner2.Name)
	assert.Nil(t, got.Lunch1)

	plans, err := store.MealPlans().ListBySavedBy(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, plan.ID, plans[0].ID)

	_, err = store.MealPlans().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealPlanCannotBeUpdated(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	plan := &models.MealPlan{}
	require.NoError(t, NewGormStore(db).MealPlans().Create(context.Background(), plan))

	err := db.Model(plan).Update("breakfast1_id", uuid.NewString()).Error
	assert.ErrorIs(t, err, models.ErrMealPlanImmutable)
}

func TestUserRepository(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()

	user := &models.User{Username: "cook", Email: "cook@example.com", PasswordHash: "hash"}
	require.NoError(t, store.Users().Create(ctx, user))

	got, err := store.Users().GetByUsername(ctx, "cook")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook", got.Username)

	exists, err := store.Users().ExistsByUsername(ctx, "cook")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	dup := &models.User{Username: "cook", Email: "other@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, store.Users().Create(ctx, dup), ErrDuplicate, "username is unique")
}

func TestWithinTransactionRollsBack(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewGormStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx Store) error {
		if err := tx.Recipes().Create(ctx, &models.Recipe{Name: "Doomed", Public: true}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := store.Recipes().ExistsByName(ctx, "Doomed", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}
