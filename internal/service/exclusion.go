package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/types"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ExclusionService manages per-user supermarket exclusions. Exclusions are
// scoped to one (ingredient, supermarket) pair and only affect the owning
// user's price lookups.
type ExclusionService struct {
	db    *gorm.DB
	cache *priceCache
}

// NewExclusionService creates a new ExclusionService instance. The Redis
// client may be nil, which disables price-view cache invalidation.
func NewExclusionService(db *gorm.DB, cacheClient *redis.Client) *ExclusionService {
	return &ExclusionService{
		db:    db,
		cache: newPriceCache(cacheClient, 5*time.Minute),
	}
}

// GetExclusions returns all of the user's exclusions with display names
// attached, ordered by ingredient then supermarket name.
func (s *ExclusionService) GetExclusions(ctx context.Context, userID uuid.UUID) ([]types.ExclusionView, error) {
	var views []types.ExclusionView
	err := s.db.WithContext(ctx).Table("ingredient_exclusions").
		Select(`ingredient_exclusions.id, ingredient_exclusions.user_id,
			ingredient_exclusions.ingredient_id,
			ingredients.name AS ingredient_name,
			ingredient_exclusions.supermarket_id,
			supermarkets.name AS supermarket_name,
			ingredient_exclusions.reason`).
		Joins("JOIN ingredients ON ingredients.id = ingredient_exclusions.ingredient_id").
		Joins("JOIN supermarkets ON supermarkets.id = ingredient_exclusions.supermarket_id").
		Where("ingredient_exclusions.user_id = ?", userID).
		Order("ingredients.name, supermarkets.name").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// GetExcludedSupermarketIDs returns the supermarket ids the user has excluded
// for one ingredient.
func (s *ExclusionService) GetExcludedSupermarketIDs(ctx context.Context, userID, ingredientID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.IngredientExclusion{}).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		Pluck("supermarket_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddExclusion records an exclusion. Repeating the call for the same pair is
// idempotent; a changed reason overwrites the stored one.
func (s *ExclusionService) AddExclusion(ctx context.Context, userID uuid.UUID, req *types.CreateExclusionRequest) (*types.ExclusionView, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		return nil, err
	}
	var supermarket models.Supermarket
	if err := s.db.WithContext(ctx).First(&supermarket, "id = ?", req.SupermarketID).Error; err != nil {
		return nil, err
	}

	exclusion, err := s.writeExclusion(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUserIngredient(ctx, req.IngredientID, userID)

	return &types.ExclusionView{
		ID:              exclusion.ID,
		UserID:          exclusion.UserID,
		IngredientID:    exclusion.IngredientID,
		IngredientName:  ingredient.Name,
		SupermarketID:   exclusion.SupermarketID,
		SupermarketName: supermarket.Name,
		Reason:          exclusion.Reason,
	}, nil
}

func (s *ExclusionService) writeExclusion(ctx context.Context, userID uuid.UUID, req *types.CreateExclusionRequest) (*models.IngredientExclusion, error) {
	var existing models.IngredientExclusion
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ? AND supermarket_id = ?", userID, req.IngredientID, req.SupermarketID).
		First(&existing).Error
	if err == nil {
		if req.Reason != "" && req.Reason != existing.Reason {
			existing.Reason = req.Reason
			if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
				return nil, err
			}
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	exclusion := models.IngredientExclusion{
		UserID:        userID,
		IngredientID:  req.IngredientID,
		SupermarketID: req.SupermarketID,
		Reason:        req.Reason,
	}
	if err := s.db.WithContext(ctx).Create(&exclusion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.writeExclusion(ctx, userID, req)
		}
		return nil, err
	}
	return &exclusion, nil
}

// RemoveExclusion deletes an exclusion. Owner only.
func (s *ExclusionService) RemoveExclusion(ctx context.Context, userID, exclusionID uuid.UUID) error {
	var exclusion models.IngredientExclusion
	if err := s.db.WithContext(ctx).First(&exclusion, "id = ?", exclusionID).Error; err != nil {
		return err
	}
	if exclusion.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&models.IngredientExclusion{}, "id = ?", exclusionID).Error; err != nil {
		return err
	}
	s.cache.InvalidateUserIngredient(ctx, exclusion.IngredientID, userID)
	return nil
}
