package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMealPlanImmutable is returned when an update is attempted on a saved plan.
var ErrMealPlanImmutable = errors.New("meal plan cannot be modified once saved")

// Slot names one of the seven fixed positions of a plan.
type Slot string

const (
	SlotBreakfast1 Slot = "breakfast1"
	SlotBreakfast2 Slot = "breakfast2"
	SlotBreakfast3 Slot = "breakfast3"
	SlotLunch1     Slot = "lunch1"
	SlotLunch2     Slot = "lunch2"
	SlotDinner1    Slot = "dinner1"
	SlotDinner2    Slot = "dinner2"
)

// Slots lists every slot in display order.
var Slots = []Slot{
	SlotBreakfast1, SlotBreakfast2, SlotBreakfast3,
	SlotLunch1, SlotLunch2,
	SlotDinner1, SlotDinner2,
}

// MealPlan is a saved week of recipes for one user. Once created it is read-only.
type MealPlan struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time  `json:"date"`
	Breakfast1ID *uuid.UUID `gorm:"type:varchar(36)" json:"breakfast1_id"`
	Breakfast1   *Recipe    `gorm:"foreignKey:Breakfast1ID" json:"breakfast1,omitempty"`
	Breakfast2ID *uuid.UUID `gorm:"type:varchar(36)" json:"breakfast2_id"`
	Breakfast2   *Recipe    `gorm:"foreignKey:Breakfast2ID" json:"breakfast2,omitempty"`
	Breakfast3ID *uuid.UUID `gorm:"type:varchar(36)" json:"breakfast3_id"`
	Breakfast3   *Recipe    `gorm:"foreignKey:Breakfast3ID" json:"breakfast3,omitempty"`
	Lunch1ID     *uuid.UUID `gorm:"type:varchar(36)" json:"lunch1_id"`
	Lunch1       *Recipe    `gorm:"foreignKey:Lunch1ID" json:"lunch1,omitempty"`
	Lunch2ID     *uuid.UUID `gorm:"type:varchar(36)" json:"lunch2_id"`
	Lunch2       *Recipe    `gorm:"foreignKey:Lunch2ID" json:"lunch2,omitempty"`
	Dinner1ID    *uuid.UUID `gorm:"type:varchar(36)" json:"dinner1_id"`
	Dinner1      *Recipe    `gorm:"foreignKey:Dinner1ID" json:"dinner1,omitempty"`
	Dinner2ID    *uuid.UUID `gorm:"type:varchar(36)" json:"dinner2_id"`
	Dinner2      *Recipe    `gorm:"foreignKey:Dinner2ID" json:"dinner2,omitempty"`
	SavedByID    *uuid.UUID `gorm:"type:varchar(36);index" json:"saved_by_id"`
	SavedBy      *User      `gorm:"foreignKey:SavedByID" json:"-"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate rejects every update; saved plans have no edit path.
func (p *MealPlan) BeforeUpdate(tx *gorm.DB) error {
	return ErrMealPlanImmutable
}

// SetSlot points the given slot at a recipe id.
func (p *MealPlan) SetSlot(slot Slot, recipeID uuid.UUID) {
	id := recipeID
	switch slot {
	case SlotBreakfast1:
		p.Breakfast1ID = &id
	case SlotBreakfast2:
		p.Breakfast2ID = &id
	case SlotBreakfast3:
		p.Breakfast3ID = &id
	case SlotLunch1:
		p.Lunch1ID = &id
	case SlotLunch2:
		p.Lunch2ID = &id
	case SlotDinner1:
		p.Dinner1ID = &id
	case SlotDinner2:
		p.Dinner2ID = &id
	}
}

// Recipe returns the loaded recipe for a slot, nil when the slot is empty or not preloaded.
func (p *MealPlan) Recipe(slot Slot) *Recipe {
	switch slot {
	case SlotBreakfast1:
		return p.Breakfast1
	case SlotBreakfast2:
		return p.Breakfast2
	case SlotBreakfast3:
		return p.Breakfast3
	case SlotLunch1:
		return p.Lunch1
	case SlotLunch2:
		return p.Lunch2
	case SlotDinner1:
		return p.Dinner1
	case SlotDinner2:
		return p.Dinner2
	}
	return nil
}

// Recipes returns the loaded slot recipes in slot order, skipping empty slots.
func (p *MealPlan) Recipes() []*Recipe {
	out := make([]*Recipe, 0, len(Slots))
	for _, s := range Slots {
		if r := p.Recipe(s); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// SlotAssociations are the preload names for every slot.
var SlotAssociations = []string{
	"Breakfast1", "Breakfast2", "Breakfast3",
	"Lunch1", "Lunch2",
	"Dinner1", "Dinner2",
}
