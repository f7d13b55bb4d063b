package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// BasePath prefixes every versioned route.
const BasePath = "/api/v1"

const insufficientRecipesMessage = "Not enough recipes in the database to create a meal plan"

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		poolErr       *planner.InsufficientPoolError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &poolErr), errors.Is(err, planner.ErrInsufficientRecipes):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": insufficientRecipesMessage})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
