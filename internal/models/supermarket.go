package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pricing unit kinds. Prices are quoted per kg, per liter, or per piece.
const (
	UnitKg    = "kg"
	UnitLiter = "L"
	UnitPiece = "unit"
)

// ValidUnitKind reports whether u is a known pricing unit kind.
func ValidUnitKind(u string) bool {
	switch u {
	case UnitKg, UnitLiter, UnitPiece:
		return true
	}
	return false
}

// Supermarket is a retail source for ingredient prices. Deactivation is a
// soft delete: historical price and exclusion rows stay intact, reads filter
// on IsActive.
type Supermarket struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	LogoURL   string    `gorm:"size:255" json:"logo_url"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}

func (s *Supermarket) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
