package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/router"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

// Runs the HTTP stack against a real PostgreSQL container.
func setupPostgresApp(t *testing.T) (*gin.Engine, *gorm.DB, repository.Store) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupPostgresDatabase(t)
	store := repository.NewGormStore(db)
	r := router.SetupRouter([]string{"http://localhost:3000"}, api.Dependencies{
		Auth:       service.NewAuthService(store, "integration-secret-key", time.Hour),
		Recipes:    service.NewRecipeService(store),
		Categories: service.NewCategoryService(store),
		Plans:      service.NewPlanService(store, planner.NewGenerator()),
	})
	return r, db, store
}

func post(t *testing.T, r *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecipeCategoriesOnPostgres(t *testing.T) {
	r, db, store := setupPostgresApp(t)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "pg-cook")
	token, err := service.NewAuthService(store, "integration-secret-key", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	lunch := testhelpers.Category(t, db, models.CategoryLunch)
	dinner := testhelpers.Category(t, db, models.CategoryDinner)

	w := post(t, r, api.BasePath+"/recipes", token, gin.H{
		"name":        "Chili",
		"directions":  "Simmer for an hour.",
		"ingredients": "beans, beef, tomato",
		"categories":  []string{lunch.ID.String(), dinner.ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Recipe models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	recipe, err := store.Recipes().GetByID(ctx, created.Recipe.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lunch.ID, dinner.ID}, recipe.CategoryIDs())
	assert.Equal(t, models.Ingredients{"beans", "beef", "tomato"}, recipe.Ingredients)

	w = post(t, r, api.BasePath+"/recipes", token, gin.H{
		"name":        "Chili",
		"directions":  "Again.",
		"ingredients": "beans",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSavedPlanOnPostgres(t *testing.T) {
	_, db, store := setupPostgresApp(t)
	ctx := context.Background()

	testhelpers.SeedPlannablePool(t, db)
	user := testhelpers.CreateTestUser(t, db, "pg-planner")
	plans := service.NewPlanService(store, planner.NewGenerator())

	generated, err := plans.GeneratePlan(ctx)
	require.NoError(t, err)

	slots := make(map[models.Slot]uuid.UUID, len(models.Slots))
	for slot, recipe := range generated.Slots() {
		slots[slot] = recipe.ID
	}
	saved, err := plans.SavePlan(ctx, user.ID, slots)
	require.NoError(t, err)

	details, err := plans.GetPlan(ctx, saved.ID)
	require.NoError(t, err)
	for _, slot := range models.Slots {
		require.NotNil(t, details.Plan.Recipe(slot), slot)
		assert.Equal(t, slots[slot], details.Plan.Recipe(slot).ID)
	}
	assert.ElementsMatch(t, generated.Ingredients, details.Ingredients)
}
