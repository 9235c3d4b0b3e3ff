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

// PriceService handles community price submissions and exclusion-aware
// price lookups.
type PriceService struct {
	db    *gorm.DB
	cache *priceCache
}

// NewPriceService creates a new PriceService instance. The Redis client may
// be nil, which disables the price-view cache.
func NewPriceService(db *gorm.DB, cacheClient *redis.Client) *PriceService {
	return &PriceService{
		db:    db,
		cache: newPriceCache(cacheClient, 5*time.Minute),
	}
}

// GetPricesForIngredient returns every price row for the ingredient that is
// visible to the user: rows from all users (community pricing), minus the
// user's excluded supermarkets, minus inactive supermarkets. Rows are
// ordered by price ascending with supermarket id as tie-break.
func (s *PriceService) GetPricesForIngredient(ctx context.Context, ingredientID, userID uuid.UUID) ([]types.PriceView, error) {
	if views, ok := s.cache.Get(ctx, ingredientID, userID); ok {
		return views, nil
	}

	var excluded []string
	if err := s.db.WithContext(ctx).Model(&models.IngredientExclusion{}).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		Pluck("supermarket_id", &excluded).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Table("ingredient_prices").
		Select(`ingredient_prices.id, ingredient_prices.ingredient_id,
			ingredients.name AS ingredient_name,
			ingredient_prices.supermarket_id,
			supermarkets.name AS supermarket_name,
			ingredient_prices.price_per_unit, ingredient_prices.unit,
			ingredient_prices.user_id`).
		Joins("JOIN ingredients ON ingredients.id = ingredient_prices.ingredient_id").
		Joins("JOIN supermarkets ON supermarkets.id = ingredient_prices.supermarket_id AND supermarkets.is_active = ?", true).
		Where("ingredient_prices.ingredient_id = ?", ingredientID)
	if len(excluded) > 0 {
		query = query.Where("ingredient_prices.supermarket_id NOT IN ?", excluded)
	}

	var views []types.PriceView
	if err := query.Order("ingredient_prices.price_per_unit, ingredient_prices.supermarket_id").
		Scan(&views).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, ingredientID, userID, views)
	return views, nil
}

// GetCheapestPrice returns the lowest-priced visible row for the
// ingredient, or nil when no price is available. The comparison is purely
// numeric: unit kinds are not normalized, so a per-kg price competes
// directly with a per-liter price. Ties go to the lowest supermarket id.
func (s *PriceService) GetCheapestPrice(ctx context.Context, ingredientID, userID uuid.UUID) (*types.PriceView, error) {
	views, err := s.GetPricesForIngredient(ctx, ingredientID, userID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}

	cheapest := views[0]
	for _, v := range views[1:] {
		if v.PricePerUnit.LessThan(cheapest.PricePerUnit) {
			cheapest = v
		}
	}
	return &cheapest, nil
}

// UpsertPrice records the user's price for (ingredient, supermarket). A
// second submission for the same pair replaces the first. A concurrent
// double-submission that trips the uniqueness constraint is retried as an
// update instead of being surfaced.
func (s *PriceService) UpsertPrice(ctx context.Context, userID uuid.UUID, req *types.UpsertPriceRequest) (*types.PriceView, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		return nil, err
	}
	var supermarket models.Supermarket
	if err := s.db.WithContext(ctx).First(&supermarket, "id = ?", req.SupermarketID).Error; err != nil {
		return nil, err
	}

	price, err := s.writePrice(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateIngredient(ctx, req.IngredientID)

	return &types.PriceView{
		ID:              price.ID,
		IngredientID:    price.IngredientID,
		IngredientName:  ingredient.Name,
		SupermarketID:   price.SupermarketID,
		SupermarketName: supermarket.Name,
		PricePerUnit:    price.PricePerUnit,
		Unit:            price.Unit,
		UserID:          price.UserID,
	}, nil
}

func (s *PriceService) writePrice(ctx context.Context, userID uuid.UUID, req *types.UpsertPriceRequest) (*models.IngredientPrice, error) {
	var existing models.IngredientPrice
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ? AND supermarket_id = ?", userID, req.IngredientID, req.SupermarketID).
		First(&existing).Error
	if err == nil {
		existing.PricePerUnit = req.PricePerUnit.Round(2)
		existing.Unit = req.Unit
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	price := models.IngredientPrice{
		IngredientID:  req.IngredientID,
		SupermarketID: req.SupermarketID,
		UserID:        userID,
		PricePerUnit:  req.PricePerUnit.Round(2),
		Unit:          req.Unit,
	}
	if err := s.db.WithContext(ctx).Create(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent submission of the same
			// key; converge by updating the row that won.
			return s.writePrice(ctx, userID, req)
		}
		return nil, err
	}
	return &price, nil
}

// DeletePrice removes a price row. Submitter only.
func (s *PriceService) DeletePrice(ctx context.Context, userID, priceID uuid.UUID) error {
	var price models.IngredientPrice
	if err := s.db.WithContext(ctx).First(&price, "id = ?", priceID).Error; err != nil {
		return err
	}
	if price.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&models.IngredientPrice{}, "id = ?", priceID).Error; err != nil {
		return err
	}
	s.cache.InvalidateIngredient(ctx, price.IngredientID)
	return nil
}
