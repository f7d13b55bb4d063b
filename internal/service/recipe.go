package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/markdown"
	"github.com/pageza/mealplanner/backend/internal/metrics"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// maxNameLength is counted in characters, matching the binding's max=250.
const maxNameLength = 250

// RecipeInput holds the editable fields of a recipe.
type RecipeInput struct {
	Name        string
	Directions  string
	Ingredients models.Ingredients
	Servings    int
	PrepTime    string
	CookTime    string
	Public      *bool
	CategoryIDs []uuid.UUID
	AuthorID    *uuid.UUID
}

// NewRecipeInput converts a submitted form. Ingredient text goes through
// models.ParseIngredients; category ids must be valid UUIDs.
func NewRecipeInput(req *types.RecipeRequest) (*RecipeInput, error) {
	input := &RecipeInput{
		Name:        strings.TrimSpace(req.Name),
		Directions:  req.Directions,
		Ingredients: models.ParseIngredients(req.Ingredients),
		Servings:    req.Servings,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Public:      req.Public,
	}
	for _, raw := range req.Categories {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ValidationError{Field: "categories", Message: fmt.Sprintf("invalid category id %q", raw)}
		}
		input.CategoryIDs = append(input.CategoryIDs, id)
	}
	return input, nil
}

func (in *RecipeInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return &ValidationError{Field: "name", Message: "is required"}
	case utf8.RuneCountInString(in.Name) > maxNameLength:
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	case strings.TrimSpace(in.Directions) == "":
		return &ValidationError{Field: "directions", Message: "is required"}
	case in.Servings < 0:
		return &ValidationError{Field: "servings", Message: "must be at least 1"}
	}
	if in.Servings == 0 {
		in.Servings = 1
	}
	return nil
}

func (in *RecipeInput) apply(recipe *models.Recipe) {
	recipe.Name = in.Name
	recipe.Directions = in.Directions
	recipe.Ingredients = in.Ingredients
	recipe.Servings = in.Servings
	recipe.PrepTime = in.PrepTime
	recipe.CookTime = in.CookTime
	if in.Public != nil {
		recipe.Public = *in.Public
	}
}

// RecipeDetails is a recipe prepared for display.
type RecipeDetails struct {
	Recipe         *models.Recipe
	Ingredients    []string
	DirectionsHTML string
}

// RecipeService handles recipe operations
type RecipeService struct {
	store repository.Store
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store repository.Store) *RecipeService {
	return &RecipeService{store: store}
}

// CreateRecipe stores a new recipe unless its name is already taken. The name check
// and the insert are separate statements, so two concurrent creations of the same
// name can both succeed.
func (s *RecipeService) CreateRecipe(ctx context.Context, input *RecipeInput) (*models.Recipe, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.Recipes().ExistsByName(ctx, input.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.DuplicateRecipeNames.Inc()
		return nil, &DuplicateNameError{Name: input.Name}
	}

	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{Public: true, AuthorID: input.AuthorID}
	input.apply(recipe)

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := tx.Recipes().Create(ctx, recipe); err != nil {
			return err
		}
		return tx.Recipes().AttachCategories(ctx, recipe.ID, categoryIDs(categories))
	})
	if err != nil {
		return nil, err
	}

	recipe.Categories = derefCategories(categories)
	metrics.RecipesCreated.Inc()
	logging.Ctx(ctx).Info().Str("recipe_id", recipe.ID.String()).Str("name", recipe.Name).Msg("recipe created")
	return recipe, nil
}

// UpdateRecipe overwrites the recipe's fields and reconciles its categories with
// input.CategoryIDs in one transaction.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input *RecipeInput) (*models.Recipe, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != recipe.Name {
		exists, err := s.store.Recipes().ExistsByName(ctx, input.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			metrics.DuplicateRecipeNames.Inc()
			return nil, &DuplicateNameError{Name: input.Name}
		}
	}

	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	remove, add := planner.Reconcile(recipe.CategoryIDs(), categoryIDs(categories))

	input.apply(recipe)
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := tx.Recipes().Update(ctx, recipe); err != nil {
			return err
		}
		if err := tx.Recipes().DetachCategories(ctx, id, remove); err != nil {
			return err
		}
		return tx.Recipes().AttachCategories(ctx, id, add)
	})
	if err != nil {
		return nil, notFound("recipe", id.String(), err)
	}

	logging.Ctx(ctx).Info().
		Str("recipe_id", id.String()).
		Int("categories_added", len(add)).
		Int("categories_removed", len(remove)).
		Msg("recipe updated")
	return s.GetRecipe(ctx, id)
}

// resolveCategories loads every requested category, failing on the first unknown id.
func (s *RecipeService) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]*models.Category, error) {
	found, err := s.store.Categories().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	categories := make([]*models.Category, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Resource: "category", Key: id.String()}
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func categoryIDs(categories []*models.Category) []uuid.UUID {
	ids := make([]uuid.UUID, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

func derefCategories(categories []*models.Category) []models.Category {
	out := make([]models.Category, len(categories))
	for i, c := range categories {
		out[i] = *c
	}
	return out
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.store.Recipes().GetByID(ctx, id)
	if err != nil {
		return nil, notFound("recipe", id.String(), err)
	}
	return recipe, nil
}

// GetRecipeDetails returns the recipe with its directions rendered to HTML.
func (s *RecipeService) GetRecipeDetails(ctx context.Context, id uuid.UUID) (*RecipeDetails, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := markdown.ToHTML(recipe.Directions)
	if err != nil {
		return nil, err
	}
	ingredients := []string(recipe.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return &RecipeDetails{Recipe: recipe, Ingredients: ingredients, DirectionsHTML: html}, nil
}

// ListRecipes returns every recipe ordered by name.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*models.Recipe, error) {
	return s.store.Recipes().List(ctx)
}

// SearchRecipes matches recipe names containing terms, ignoring case.
func (s *RecipeService) SearchRecipes(ctx context.Context, terms string) ([]*models.Recipe, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil, &ValidationError{Field: "terms", Message: "search terms are required"}
	}
	return s.store.Recipes().SearchByName(ctx, terms)
}

// RandomRecipeID picks a recipe uniformly at random.
func (s *RecipeService) RandomRecipeID(ctx context.Context) (uuid.UUID, error) {
	ids, err := s.store.Recipes().ListIDs(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if len(ids) == 0 {
		return uuid.Nil, &NotFoundError{Resource: "recipe", Key: "random"}
	}
	return ids[rand.IntN(len(ids))], nil
}

// SetImageURL records the location of the recipe's uploaded image.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.ImageURL = url
	if err := s.store.Recipes().Update(ctx, recipe); err != nil {
		return nil, notFound("recipe", id.String(), err)
	}
	return recipe, nil
}
