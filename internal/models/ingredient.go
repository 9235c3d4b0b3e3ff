package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient carries nutrition per 100g (or 100ml for liquids). A nil
// CreatedBy marks a shared public ingredient.
type Ingredient struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;uniqueIndex;not null" json:"name"`

	CaloriesPer100g float64 `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64 `gorm:"not null" json:"protein_per_100g"`
	CarbsPer100g    float64 `gorm:"not null" json:"carbs_per_100g"`
	FatsPer100g     float64 `gorm:"not null" json:"fats_per_100g"`

	IsPublic  bool       `gorm:"default:true" json:"is_public"`
	CreatedBy *uuid.UUID `gorm:"type:varchar(36);index" json:"created_by,omitempty"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
