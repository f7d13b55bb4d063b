package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// TestPassword is the plain-text password of every user made by CreateTestUser.
const TestPassword = "correct-horse-battery-staple"

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// Category returns the seeded category with the given name, creating it if needed.
func Category(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	var category models.Category
	err := db.Where("name = ?", name).Order("created_at ASC").Take(&category).Error
	if err == nil {
		return &category
	}
	category = models.Category{Name: name}
	if err := db.Omit("Recipes").Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return &category
}

// CreateTestRecipe inserts a recipe and links it to the named categories.
func CreateTestRecipe(t *testing.T, db *gorm.DB, name string, ingredients []string, categories ...string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:        name,
		Directions:  "1. Cook " + name,
		Ingredients: models.Ingredients(ingredients),
		Servings:    2,
		Public:      true,
	}
	if err := db.Omit("Categories", "Author").Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	for _, categoryName := range categories {
		category := Category(t, db, categoryName)
		row := map[string]interface{}{
			"recipe_id":   recipe.ID.String(),
			"category_id": category.ID.String(),
		}
		if err := db.Table("recipe_categories").Create(row).Error; err != nil {
			t.Fatalf("failed to link category: %v", err)
		}
		recipe.Categories = append(recipe.Categories, *category)
	}
	return recipe
}

// SeedPlannablePool creates the minimum recipes a plan can be generated from.
func SeedPlannablePool(t *testing.T, db *gorm.DB) {
	t.Helper()
	CreateTestRecipe(t, db, "Pancakes", []string{"flour", "egg", "milk"}, models.CategoryBreakfast)
	CreateTestRecipe(t, db, "Omelette", []string{"egg", "cheese"}, models.CategoryBreakfast)
	CreateTestRecipe(t, db, "Porridge", []string{"oats", "milk"}, models.CategoryBreakfast)
	CreateTestRecipe(t, db, "Caesar Salad", []string{"lettuce", "croutons"}, models.CategoryLunch)
	CreateTestRecipe(t, db, "Tomato Soup", []string{"tomato", "cream"}, models.CategoryLunch)
	CreateTestRecipe(t, db, "Lasagne", []string{"pasta", "beef", "cheese"}, models.CategoryDinner)
	CreateTestRecipe(t, db, "Curry", []string{"rice", "chicken"}, models.CategoryDinner)
}
