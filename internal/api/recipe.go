package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	imageService  service.IImageService
	authService   middleware.TokenValidator
	createLimiter *middleware.RateLimiter
}

// NewRecipeHandler wires the recipe routes. imageService and createLimiter may be nil,
// which disables uploads and rate limiting respectively.
func NewRecipeHandler(
	recipeService service.IRecipeService,
	imageService service.IImageService,
	authService middleware.TokenValidator,
	createLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		authService:   authService,
		createLimiter: createLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", requireAuth, h.createLimiter.RateLimitMiddleware(), h.CreateRecipe)
		recipes.GET("/random", h.RandomRecipe)
		recipes.POST("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/edit", requireAuth, h.EditRecipe)
		recipes.PUT("/:id", requireAuth, h.UpdateRecipe)
		recipes.POST("/:id/image", requireAuth, h.UploadImage)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	input, err := service.NewRecipeInput(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	if userID, ok := middleware.UserIDFromContext(c); ok {
		input.AuthorID = &userID
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	details, err := h.recipeService.GetRecipeDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":          details.Recipe,
		"ingredients":     details.Ingredients,
		"directions_html": details.DirectionsHTML,
	})
}

// EditRecipe returns the recipe's current values in the shape the edit form submits.
func (h *RecipeHandler) EditRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":       recipe,
		"ingredients":  recipe.Ingredients.String(),
		"category_ids": recipe.CategoryIDs(),
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	input, err := service.NewRecipeInput(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// RandomRecipe redirects to a recipe chosen uniformly at random.
func (h *RecipeHandler) RandomRecipe(c *gin.Context) {
	id, err := h.recipeService.RandomRecipeID(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, BasePath+"/recipes/"+id.String())
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.recipeService.SearchRecipes(c.Request.Context(), req.Terms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "terms": req.Terms})
}
