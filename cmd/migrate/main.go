package main

import (
	"context"
	"flag"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
)

func main() {
	skipSeed := flag.Bool("skip-seed", false, "Create the schema without seeding the default categories")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		logging.Fatal().Err(err).Msg("Migration failed")
	}

	if !*skipSeed {
		if err := database.SeedCategories(context.Background(), db.DB); err != nil {
			logging.Fatal().Err(err).Msg("Seeding categories failed")
		}
	}

	logging.Info().Msg("Migrations completed successfully")
}
