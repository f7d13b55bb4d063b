// Package repository defines the persistence operations the services depend on and
// their gorm implementations.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// ErrNotFound is returned when a lookup by identifier or name matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// RecipeRepository persists recipes and their category membership.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	// ExistsByName reports whether a recipe other than exclude has exactly this name.
	ExistsByName(ctx context.Context, name string, exclude *uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.Recipe, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	SearchByName(ctx context.Context, terms string) ([]*models.Recipe, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Recipe, error)
	AttachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error
	DetachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// GetByName returns the oldest category with exactly this name.
	GetByName(ctx context.Context, name string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// MealPlanRepository persists meal plans. There is deliberately no update operation.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *models.MealPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MealPlan, error)
	ListBySavedBy(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// Store groups the repositories and runs units of work in a transaction.
type Store interface {
	Recipes() RecipeRepository
	Categories() CategoryRepository
	MealPlans() MealPlanRepository
	Users() UserRepository
	// WithinTransaction runs fn against a Store bound to a single transaction. fn must
	// only use the Store it is given.
	WithinTransaction(ctx context.Context, fn func(Store) error) error
}
