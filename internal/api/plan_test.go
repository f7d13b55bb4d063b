package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func setupPlanTestRouter(plans *mocks.MockPlanService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewPlanHandler(plans, newTestAuth(userID), nil).RegisterRoutes(router.Group(BasePath))
	return router
}

func recipeNamed(name string) *models.Recipe {
	return &models.Recipe{ID: uuid.New(), Name: name}
}

func TestGeneratePlan(t *testing.T) {
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, uuid.New())

	plans.On("GeneratePlan", mock.Anything).Return(&planner.Plan{
		Breakfast:   []*models.Recipe{recipeNamed("Pancakes"), recipeNamed("Omelette"), recipeNamed("Porridge")},
		Lunch:       []*models.Recipe{recipeNamed("Caesar Salad"), recipeNamed("Tomato Soup")},
		Dinner:      []*models.Recipe{recipeNamed("Lasagne"), recipeNamed("Curry")},
		Ingredients: []string{"flour", "egg"},
	}, nil)

	w := doJSON(t, router, http.MethodGet, BasePath+"/planner", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	for _, slot := range models.Slots {
		assert.Contains(t, body, string(slot))
	}
	assert.Equal(t, "Pancakes", body["breakfast1"].(map[string]any)["name"])
	assert.Equal(t, "Curry", body["dinner2"].(map[string]any)["name"])
	assert.Equal(t, true, body["enable_save"])
	assert.Equal(t, "for the week", body["plan_name"])
	assert.Equal(t, []any{"flour", "egg"}, body["ingredients"])
}

func TestGeneratePlanErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient pool", &planner.InsufficientPoolError{Meal: "lunch", Need: 2, Have: 1}, http.StatusUnprocessableEntity},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := &mocks.MockPlanService{}
			plans.On("GeneratePlan", mock.Anything).Return(nil, tt.err)
			router := setupPlanTestRouter(plans, uuid.New())

			w := doJSON(t, router, http.MethodGet, BasePath+"/planner", nil, true)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnprocessableEntity {
				assert.Equal(t, "Not enough recipes in the database to create a meal plan", decode(t, w)["error"])
			}
		})
	}
}

func TestGeneratePlanRequiresAuth(t *testing.T) {
	router := setupPlanTestRouter(&mocks.MockPlanService{}, uuid.New())
	w := doJSON(t, router, http.MethodGet, BasePath+"/planner", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func planForm(ids map[models.Slot]uuid.UUID) url.Values {
	form := url.Values{}
	for slot, id := range ids {
		form.Set(string(slot)+"_recipe", id.String())
	}
	return form
}

func TestSavePlan(t *testing.T) {
	userID := uuid.New()
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, userID)

	slots := make(map[models.Slot]uuid.UUID, len(models.Slots))
	for _, slot := range models.Slots {
		slots[slot] = uuid.New()
	}
	plans.On("SavePlan", mock.Anything, userID, slots).Return(&models.MealPlan{ID: uuid.New()}, nil)

	req := httptest.NewRequest(http.MethodPost, BasePath+"/plans", strings.NewReader(planForm(slots).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, BasePath+"/plans/mine", w.Header().Get("Location"))
	plans.AssertExpectations(t)
}

func TestSavePlanRejectsBadInput(t *testing.T) {
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, uuid.New())

	w := doJSON(t, router, http.MethodPost, BasePath+"/plans", gin.H{"breakfast1_recipe": uuid.NewString()}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := gin.H{}
	for _, slot := range models.Slots {
		body[string(slot)+"_recipe"] = "not-an-id"
	}
	w = doJSON(t, router, http.MethodPost, BasePath+"/plans", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	plans.AssertNotCalled(t, "SavePlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestSavePlanUnknownRecipe(t *testing.T) {
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, uuid.New())
	plans.On("SavePlan", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to save meal plan: %w", &service.NotFoundError{Resource: "recipe", Key: "x"}))

	body := gin.H{}
	for _, slot := range models.Slots {
		body[string(slot)+"_recipe"] = uuid.NewString()
	}
	w := doJSON(t, router, http.MethodPost, BasePath+"/plans", body, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyPlans(t *testing.T) {
	userID := uuid.New()
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, userID)

	plan := &models.MealPlan{ID: uuid.New(), CreatedAt: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)}
	plans.On("ListUserPlans", mock.Anything, userID).Return([]*models.MealPlan{plan}, nil)

	w := doJSON(t, router, http.MethodGet, BasePath+"/plans/mine", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode(t, w)["meal_plans"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, plan.ID.String()+" - 03 05, 2024", list[0].(map[string]any)["name"])
}

func TestGetPlan(t *testing.T) {
	plans := &mocks.MockPlanService{}
	router := setupPlanTestRouter(plans, uuid.New())

	lasagne := recipeNamed("Lasagne")
	plan := &models.MealPlan{
		ID:        uuid.New(),
		CreatedAt: time.Date(2023, time.December, 24, 18, 30, 0, 0, time.UTC),
		Dinner1:   lasagne,
	}
	plans.On("GetPlan", mock.Anything, plan.ID).Return(&service.PlanDetails{
		Plan:        plan,
		Ingredients: []string{"pasta", "beef", "cheese"},
	}, nil)
	missing := uuid.New()
	plans.On("GetPlan", mock.Anything, missing).Return(nil, &service.NotFoundError{Resource: "meal plan", Key: missing.String()})

	w := doJSON(t, router, http.MethodGet, BasePath+"/plans/"+plan.ID.String(), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["enable_save"])
	assert.Equal(t, plan.ID.String()+" - 12 24, 2023", body["plan_name"])
	assert.Equal(t, "Lasagne", body["dinner1"].(map[string]any)["name"])
	assert.Nil(t, body["breakfast1"])

	w = doJSON(t, router, http.MethodGet, BasePath+"/plans/"+missing.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
