package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/router"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("environment", string(config.GetEnvironment())).Msg("Starting meal planner API")
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}
	if err := database.SeedCategories(context.Background(), db.DB); err != nil {
		logging.Fatal().Err(err).Msg("Failed to seed categories")
	}

	store := repository.NewGormStore(db.DB)
	deps := api.Dependencies{
		Auth:       service.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL),
		Recipes:    service.NewRecipeService(store),
		Categories: service.NewCategoryService(store),
		Plans:      service.NewPlanService(store, planner.NewGenerator()),
		DB:         db,
	}

	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
		} else {
			defer redisClient.Close()
			deps.RecipeLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
			deps.PlanLimiter = middleware.NewPlanGenerationRateLimiter(redisClient)
		}
	}

	if cfg.S3Enabled() {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("S3 unavailable, image uploads disabled")
		} else {
			deps.Images = service.NewImageService(s3Config)
		}
	}

	srv := server.New(cfg, router.SetupRouter(cfg.CORSOrigins, deps))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Error().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	logging.Info().Msg("Shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logging.Error().Err(err).Msg("Server shutdown error")
	}
	logging.Info().Msg("Server stopped")
}
