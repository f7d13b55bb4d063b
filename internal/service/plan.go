package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/metrics"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/planner"
	"github.com/pageza/mealplanner/backend/internal/repository"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// PlanDetails is a saved plan with its combined shopping list.
type PlanDetails struct {
	Plan        *models.MealPlan
	Ingredients []string
}

// PlanService generates, saves and reads meal plans.
type PlanService struct {
	store     repository.Store
	generator *planner.Generator
}

var _ IPlanService = (*PlanService)(nil)

// NewPlanService creates a new PlanService instance
func NewPlanService(store repository.Store, generator *planner.Generator) *PlanService {
	return &PlanService{store: store, generator: generator}
}

// GeneratePlan samples an unsaved plan from the Breakfast, Lunch and Dinner
// categories. A missing category counts as an empty pool.
func (s *PlanService) GeneratePlan(ctx context.Context) (*planner.Plan, error) {
	var pools planner.Pools
	for _, target := range []struct {
		name string
		pool *[]*models.Recipe
	}{
		{models.CategoryBreakfast, &pools.Breakfast},
		{models.CategoryLunch, &pools.Lunch},
		{models.CategoryDinner, &pools.Dinner},
	} {
		recipes, err := s.pool(ctx, target.name)
		if err != nil {
			metrics.RecordPlanGeneration("error")
			return nil, err
		}
		*target.pool = recipes
	}

	plan, err := s.generator.Generate(pools)
	if err != nil {
		if errors.Is(err, planner.ErrInsufficientRecipes) {
			metrics.RecordPlanGeneration("insufficient")
			logging.Ctx(ctx).Warn().Err(err).Msg("cannot generate meal plan")
		} else {
			metrics.RecordPlanGeneration("error")
		}
		return nil, err
	}

	metrics.RecordPlanGeneration("ok")
	return plan, nil
}

func (s *PlanService) pool(ctx context.Context, categoryName string) ([]*models.Recipe, error) {
	category, err := s.store.Categories().GetByName(ctx, categoryName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.store.Recipes().ListByCategory(ctx, category.ID)
}

// SlotsFromRequest parses the seven submitted recipe ids.
func SlotsFromRequest(req *types.SavePlanRequest) (map[models.Slot]uuid.UUID, error) {
	raw := map[models.Slot]string{
		models.SlotBreakfast1: req.Breakfast1,
		models.SlotBreakfast2: req.Breakfast2,
		models.SlotBreakfast3: req.Breakfast3,
		models.SlotLunch1:     req.Lunch1,
		models.SlotLunch2:     req.Lunch2,
		models.SlotDinner1:    req.Dinner1,
		models.SlotDinner2:    req.Dinner2,
	}
	slots := make(map[models.Slot]uuid.UUID, len(raw))
	for _, slot := range models.Slots {
		id, err := uuid.Parse(raw[slot])
		if err != nil {
			return nil, &ValidationError{Field: string(slot) + "_recipe", Message: "must be a recipe id"}
		}
		slots[slot] = id
	}
	return slots, nil
}

// SavePlan stores a plan for userID. Every slot must name an existing recipe; the
// lookups and the insert share one transaction.
func (s *PlanService) SavePlan(ctx context.Context, userID uuid.UUID, slots map[models.Slot]uuid.UUID) (*models.MealPlan, error) {
	for _, slot := range models.Slots {
		if _, ok := slots[slot]; !ok {
			return nil, &ValidationError{Field: string(slot) + "_recipe", Message: "is required"}
		}
	}

	plan := &models.MealPlan{SavedByID: &userID}
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		for _, slot := range models.Slots {
			id := slots[slot]
			if _, err := tx.Recipes().GetByID(ctx, id); err != nil {
				return notFound("recipe", id.String(), err)
			}
			plan.SetSlot(slot, id)
		}
		return tx.MealPlans().Create(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	metrics.PlansSaved.Inc()
	logging.Ctx(ctx).Info().Str("plan_id", plan.ID.String()).Str("user_id", userID.String()).Msg("meal plan saved")
	return plan, nil
}

// GetPlan loads a saved plan and aggregates its ingredients.
func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*PlanDetails, error) {
	plan, err := s.store.MealPlans().GetByID(ctx, id)
	if err != nil {
		return nil, notFound("meal plan", id.String(), err)
	}
	return &PlanDetails{
		Plan:        plan,
		Ingredients: planner.Aggregate(plan.Recipes()...),
	}, nil
}

// ListUserPlans returns the plans saved by userID, oldest first.
func (s *PlanService) ListUserPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	return s.store.MealPlans().ListBySavedBy(ctx, userID)
}
