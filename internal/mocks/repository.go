package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/repository"
)

// MockStore bundles mock repositories. WithinTransaction runs fn against the same store.
type MockStore struct {
	RecipeRepo   *MockRecipeRepository
	CategoryRepo *MockCategoryRepository
	MealPlanRepo *MockMealPlanRepository
	UserRepo     *MockUserRepository
}

// NewMockStore returns a store whose repositories have no expectations set.
func NewMockStore() *MockStore {
	return &MockStore{
		RecipeRepo:   &MockRecipeRepository{},
		CategoryRepo: &MockCategoryRepository{},
		MealPlanRepo: &MockMealPlanRepository{},
		UserRepo:     &MockUserRepository{},
	}
}

func (m *MockStore) Recipes() repository.RecipeRepository      { return m.RecipeRepo }
func (m *MockStore) Categories() repository.CategoryRepository { return m.CategoryRepo }
func (m *MockStore) MealPlans() repository.MealPlanRepository  { return m.MealPlanRepo }
func (m *MockStore) Users() repository.UserRepository          { return m.UserRepo }

func (m *MockStore) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(m)
}

// MockRecipeRepository is a mock implementation of repository.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ExistsByName(ctx context.Context, name string, exclude *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRecipeRepository) SearchByName(ctx context.Context, terms string) ([]*models.Recipe, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Recipe, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) AttachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error {
	args := m.Called(ctx, recipeID, categoryIDs)
	return args.Error(0)
}

func (m *MockRecipeRepository) DetachCategories(ctx context.Context, recipeID uuid.UUID, categoryIDs []uuid.UUID) error {
	args := m.Called(ctx, recipeID, categoryIDs)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repository.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

// MockMealPlanRepository is a mock implementation of repository.MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *models.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) ListBySavedBy(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MealPlan), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
