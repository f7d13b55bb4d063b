package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(corsOrigins []string, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group(api.BasePath)
	api.SetupAPI(v1, deps)

	return router
}
