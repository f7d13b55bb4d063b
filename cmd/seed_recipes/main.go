package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/service"
)

//go:embed recipes.json
var defaultRecipes []byte

// RecipeData is one entry of a seed file.
type RecipeData struct {
	Name        string   `json:"name"`
	Directions  string   `json:"directions"`
	Ingredients []string `json:"ingredients"`
	Servings    int      `json:"servings"`
	PrepTime    string   `json:"prep_time"`
	CookTime    string   `json:"cook_time"`
	Categories  []string `json:"categories"`
}

func main() {
	file := flag.String("file", "", "JSON file of recipes to seed (defaults to the bundled set)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	raw := defaultRecipes
	if *file != "" {
		if raw, err = os.ReadFile(*file); err != nil {
			logging.Fatal().Err(err).Str("file", *file).Msg("Failed to read seed file")
		}
	}

	var recipes []RecipeData
	if err := json.Unmarshal(raw, &recipes); err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse seed file")
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	store := repository.NewGormStore(db.DB)
	created, skipped, err := seed(context.Background(), service.NewRecipeService(store), service.NewCategoryService(store), recipes)
	if err != nil {
		logging.Fatal().Err(err).Msg("Seeding failed")
	}
	logging.Info().Int("created", created).Int("skipped", skipped).Msg("Seeding completed")
}

// seed creates each recipe, creating categories on demand. Recipes whose name is
// already taken are skipped, so the command can be re-run.
func seed(ctx context.Context, recipes service.IRecipeService, categories service.ICategoryService, data []RecipeData) (created, skipped int, err error) {
	for _, r := range data {
		input := &service.RecipeInput{
			Name:        r.Name,
			Directions:  r.Directions,
			Ingredients: models.ParseIngredients(strings.Join(r.Ingredients, ",")),
			Servings:    r.Servings,
			PrepTime:    r.PrepTime,
			CookTime:    r.CookTime,
		}
		for _, name := range r.Categories {
			category, err := categories.GetOrCreateCategory(ctx, name)
			if err != nil {
				return created, skipped, fmt.Errorf("category %q: %w", name, err)
			}
			input.CategoryIDs = append(input.CategoryIDs, category.ID)
		}

		if _, err := recipes.CreateRecipe(ctx, input); err != nil {
			if errors.Is(err, service.ErrDuplicateName) {
				logging.Debug().Str("recipe", r.Name).Msg("Skipping recipe (already present)")
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("recipe %q: %w", r.Name, err)
		}
		logging.Info().Str("recipe", r.Name).Msg("Seeded recipe")
		created++
	}
	return created, skipped, nil
}
