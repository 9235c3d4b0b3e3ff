package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"size:255;not null;index" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Instructions string        `gorm:"type:text;not null" json:"instructions"`

	PrepTimeMinutes int `gorm:"not null" json:"prep_time_minutes"`
	CookTimeMinutes int `gorm:"not null" json:"cook_time_minutes"`
	// Servings must be >= 1; per-serving nutrition divides by it.
	Servings int `gorm:"not null;check:servings >= 1" json:"servings"`

	ImageURL string    `gorm:"size:500" json:"image_url"`
	IsPublic bool      `gorm:"default:true" json:"is_public"`
	AuthorID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"author_id"`

	Lines []RecipeLine `gorm:"constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeLine joins a recipe to one ingredient with an amount and a free-form
// unit string ("g", "ml", "unit", ...). Lines live and die with the recipe.
type RecipeLine struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Unit         string    `gorm:"size:50;not null" json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (l *RecipeLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
