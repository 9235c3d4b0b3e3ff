package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal type tags for a MealPlanEntry.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// ValidMealType reports whether t is one of the known meal type tags.
func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// MealPlanEntry schedules one recipe on one calendar date for a user.
type MealPlanEntry struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID   uuid.UUID `gorm:"type:varchar(36);not null;index:idx_user_date" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`

	Date     time.Time `gorm:"type:date;not null;index:idx_user_date" json:"date"`
	MealType string    `gorm:"size:20;not null" json:"meal_type"`
	Servings int       `gorm:"not null;default:1;check:servings >= 1" json:"servings"`
	IsCooked bool      `gorm:"default:false" json:"is_cooked"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (m *MealPlanEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
