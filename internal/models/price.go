package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientPrice is one user's reported price for an ingredient at a
// supermarket. At most one row per (user, ingredient, supermarket);
// resubmission replaces the existing row.
type IngredientPrice struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	IngredientID  uuid.UUID       `gorm:"type:varchar(36);not null;index;uniqueIndex:uix_price_owner" json:"ingredient_id"`
	SupermarketID uuid.UUID       `gorm:"type:varchar(36);not null;index;uniqueIndex:uix_price_owner" json:"supermarket_id"`
	UserID        uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:uix_price_owner" json:"user_id"`
	PricePerUnit  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_unit"`
	Unit          string          `gorm:"size:10;not null" json:"unit"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *IngredientPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IngredientExclusion suppresses one supermarket from price consideration
// for one ingredient, for one user. Unique per triple; re-adding updates the
// reason instead of duplicating.
type IngredientExclusion struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:uix_exclusion" json:"user_id"`
	IngredientID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:uix_exclusion" json:"ingredient_id"`
	SupermarketID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:uix_exclusion" json:"supermarket_id"`
	Reason        string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e *IngredientExclusion) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
