package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// Dependencies are the services and limiters the handlers are built from.
// Images, the limiters and DB may be nil.
type Dependencies struct {
	Auth       service.IAuthService
	Recipes    service.IRecipeService
	Categories service.ICategoryService
	Plans      service.IPlanService
	Images     service.IImageService
	DB         Pinger

	RecipeLimiter *middleware.RateLimiter
	PlanLimiter   *middleware.RateLimiter
}

// SetupAPI registers every handler on the versioned group.
func SetupAPI(v1 *gin.RouterGroup, deps Dependencies) {
	NewHealthHandler(deps.DB).RegisterRoutes(v1)
	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Images, deps.Auth, deps.RecipeLimiter).RegisterRoutes(v1)
	NewCategoryHandler(deps.Categories).RegisterRoutes(v1)
	NewPlanHandler(deps.Plans, deps.Auth, deps.PlanLimiter).RegisterRoutes(v1)
}
