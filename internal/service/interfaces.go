package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, input *RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, input *RecipeInput) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	GetRecipeDetails(ctx context.Context, id uuid.UUID) (*RecipeDetails, error)
	ListRecipes(ctx context.Context) ([]*models.Recipe, error)
	SearchRecipes(ctx context.Context, terms string) ([]*models.Recipe, error)
	RandomRecipeID(ctx context.Context) (uuid.UUID, error)
	SetImageURL(ctx context.Context, id uuid.UUID, url string) (*models.Recipe, error)
}

// ICategoryService defines the interface for category operations
type ICategoryService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*CategoryDetails, error)
	GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error)
}

// IPlanService defines the interface for meal plan operations
type IPlanService interface {
	GeneratePlan(ctx context.Context) (*planner.Plan, error)
	SavePlan(ctx context.Context, userID uuid.UUID, slots map[models.Slot]uuid.UUID) (*models.MealPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*PlanDetails, error)
	ListUserPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IImageService stores recipe images.
type IImageService interface {
	UploadRecipeImage(ctx context.Context, body io.Reader, size int64, contentType string) (string, error)
}
