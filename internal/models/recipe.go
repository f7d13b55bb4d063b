package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `gorm:"size:250;not null;index" json:"name"`
	Directions  string      `gorm:"type:text;not null" json:"directions"`
	Ingredients Ingredients `gorm:"type:text;not null" json:"ingredients"`
	Servings    int         `gorm:"not null" json:"servings"`
	PrepTime    string      `gorm:"size:250" json:"prep_time"`
	CookTime    string      `gorm:"size:250" json:"cook_time"`
	Public      bool        `gorm:"not null" json:"public"`
	ImageURL    string      `gorm:"size:255" json:"image_url,omitempty"`
	AuthorID    *uuid.UUID  `gorm:"type:varchar(36);index" json:"author_id,omitempty"`
	Author      *User       `gorm:"foreignKey:AuthorID" json:"-"`
	Categories  []Category  `gorm:"many2many:recipe_categories;" json:"categories"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// CategoryIDs returns the ids of the loaded categories in load order.
func (r *Recipe) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
