package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/types"
	"gorm.io/gorm"
)

// IngredientService handles ingredient lookup and creation
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// CreateIngredient creates a new ingredient. Names are unique across the
// whole catalog.
func (s *IngredientService) CreateIngredient(ctx context.Context, userID uuid.UUID, req *types.CreateIngredientRequest) (*models.Ingredient, error) {
	var existing models.Ingredient
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrNameTaken
	}

	ing := models.Ingredient{
		Name:            req.Name,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatsPer100g:     req.FatsPer100g,
		IsPublic:        true,
		CreatedBy:       &userID,
	}
	if req.IsPublic != nil {
		ing.IsPublic = *req.IsPublic
	}

	if err := s.db.WithContext(ctx).Create(&ing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &ing, nil
}

// GetIngredient retrieves an ingredient by ID
func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// ListIngredients lists public ingredients, optionally filtered by a
// case-insensitive name search.
func (s *IngredientService) ListIngredients(ctx context.Context, search string, offset, limit int) ([]models.Ingredient, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.db.WithContext(ctx).Where("is_public = ?", true)
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name").Offset(offset).Limit(limit).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
