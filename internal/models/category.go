package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal categories the planner samples from. Lookup is an exact, case-sensitive match.
const (
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
)

// DefaultCategories are seeded by the migrate command.
var DefaultCategories = []string{CategoryBreakfast, CategoryLunch, CategoryDinner}

// Category is a tag attachable to many recipes. Names are not unique at the storage layer.
type Category struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:250;not null;index" json:"name"`
	Recipes   []Recipe  `gorm:"many2many:recipe_categories;" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
