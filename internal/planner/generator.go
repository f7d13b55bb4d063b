// Package planner builds weekly meal plans from categorized recipe pools and computes
// category membership deltas for recipe edits.
package planner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// Number of recipes drawn per meal type.
const (
	BreakfastCount = 3
	LunchCount     = 2
	DinnerCount    = 2
)

// ErrInsufficientRecipes is matched by every InsufficientPoolError.
var ErrInsufficientRecipes = errors.New("not enough recipes to create a meal plan")

// InsufficientPoolError reports a meal pool smaller than its sample size.
type InsufficientPoolError struct {
	Meal string
	Have int
	Need int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("not enough %s recipes: have %d, need %d", e.Meal, e.Have, e.Need)
}

func (e *InsufficientPoolError) Is(target error) bool {
	return target == ErrInsufficientRecipes
}

// Pools holds the candidate recipes for each meal type.
type Pools struct {
	Breakfast []*models.Recipe
	Lunch     []*models.Recipe
	Dinner    []*models.Recipe
}

// Plan is a generated, unsaved meal plan.
type Plan struct {
	Breakfast   []*models.Recipe
	Lunch       []*models.Recipe
	Dinner      []*models.Recipe
	Ingredients []string
}

// Slots returns the chosen recipes keyed by slot.
func (p *Plan) Slots() map[models.Slot]*models.Recipe {
	return map[models.Slot]*models.Recipe{
		models.SlotBreakfast1: p.Breakfast[0],
		models.SlotBreakfast2: p.Breakfast[1],
		models.SlotBreakfast3: p.Breakfast[2],
		models.SlotLunch1:     p.Lunch[0],
		models.SlotLunch2:     p.Lunch[1],
		models.SlotDinner1:    p.Dinner[0],
		models.SlotDinner2:    p.Dinner[1],
	}
}

// Recipes returns the chosen recipes in slot order.
func (p *Plan) Recipes() []*models.Recipe {
	out := make([]*models.Recipe, 0, BreakfastCount+LunchCount+DinnerCount)
	out = append(out, p.Breakfast...)
	out = append(out, p.Lunch...)
	return append(out, p.Dinner...)
}

// Generator samples meal plans. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator drawing from src. Use a fixed source for reproducible plans.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewGenerator returns a Generator seeded from the clock.
func NewGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return New(rand.NewPCG(seed, seed>>1|1))
}

// Generate draws 3 breakfasts, 2 lunches and 2 dinners without replacement inside each
// meal type. The same recipe may be drawn for different meal types. If any pool is too
// small no plan is produced.
func (g *Generator) Generate(pools Pools) (*Plan, error) {
	breakfast := uniqueByID(pools.Breakfast)
	lunch := uniqueByID(pools.Lunch)
	dinner := uniqueByID(pools.Dinner)

	for _, check := range []struct {
		meal string
		pool []*models.Recipe
		need int
	}{
		{models.CategoryBreakfast, breakfast, BreakfastCount},
		{models.CategoryLunch, lunch, LunchCount},
		{models.CategoryDinner, dinner, DinnerCount},
	} {
		if len(check.pool) < check.need {
			return nil, &InsufficientPoolError{Meal: check.meal, Have: len(check.pool), Need: check.need}
		}
	}

	g.mu.Lock()
	plan := &Plan{
		Breakfast: g.sample(breakfast, BreakfastCount),
		Lunch:     g.sample(lunch, LunchCount),
		Dinner:    g.sample(dinner, DinnerCount),
	}
	g.mu.Unlock()

	plan.Ingredients = Aggregate(plan.Recipes()...)
	return plan, nil
}

// sample runs a partial Fisher-Yates shuffle over a copy of pool.
func (g *Generator) sample(pool []*models.Recipe, k int) []*models.Recipe {
	buf := make([]*models.Recipe, len(pool))
	copy(buf, pool)
	for i := 0; i < k; i++ {
		j := i + g.rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}

func uniqueByID(pool []*models.Recipe) []*models.Recipe {
	seen := make(map[uuid.UUID]struct{}, len(pool))
	out := make([]*models.Recipe, 0, len(pool))
	for _, r := range pool {
		if r == nil {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
