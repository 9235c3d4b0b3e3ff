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

// SupermarketService manages the supermarket catalog. Supermarkets are never
// hard-deleted; deactivation hides them from price lookups while preserving
// the price history that references them.
type SupermarketService struct {
	db    *gorm.DB
	cache *priceCache
}

// NewSupermarketService creates a new SupermarketService instance
func NewSupermarketService(db *gorm.DB, cacheClient *redis.Client) *SupermarketService {
	return &SupermarketService{
		db:    db,
		cache: newPriceCache(cacheClient, 5*time.Minute),
	}
}

// ListSupermarkets returns supermarkets ordered by name. With activeOnly set,
// deactivated supermarkets are omitted.
func (s *SupermarketService) ListSupermarkets(ctx context.Context, activeOnly bool) ([]models.Supermarket, error) {
	query := s.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var supermarkets []models.Supermarket
	if err := query.Order("name").Find(&supermarkets).Error; err != nil {
		return nil, err
	}
	return supermarkets, nil
}

// GetSupermarket retrieves a supermarket by ID
func (s *SupermarketService) GetSupermarket(ctx context.Context, id uuid.UUID) (*models.Supermarket, error) {
	var supermarket models.Supermarket
	if err := s.db.WithContext(ctx).First(&supermarket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supermarket, nil
}

// CreateSupermarket creates a new supermarket. Names are unique.
func (s *SupermarketService) CreateSupermarket(ctx context.Context, req *types.CreateSupermarketRequest) (*models.Supermarket, error) {
	var existing models.Supermarket
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrNameTaken
	}

	supermarket := models.Supermarket{
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		IsActive: true,
	}
	if req.IsActive != nil {
		supermarket.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&supermarket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	return &supermarket, nil
}

// UpdateSupermarket applies the provided fields to a supermarket.
func (s *SupermarketService) UpdateSupermarket(ctx context.Context, id uuid.UUID, req *types.UpdateSupermarketRequest) (*models.Supermarket, error) {
	var supermarket models.Supermarket
	if err := s.db.WithContext(ctx).First(&supermarket, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != supermarket.Name {
		var existing models.Supermarket
		if err := s.db.WithContext(ctx).Where("name = ?", *req.Name).First(&existing).Error; err == nil {
			return nil, ErrNameTaken
		}
		supermarket.Name = *req.Name
	}
	if req.LogoURL != nil {
		supermarket.LogoURL = *req.LogoURL
	}
	if req.IsActive != nil {
		supermarket.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&supermarket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	return &supermarket, nil
}

// DeactivateSupermarket soft-deletes a supermarket by clearing its active
// flag. Existing price and exclusion rows stay in place.
func (s *SupermarketService) DeactivateSupermarket(ctx context.Context, id uuid.UUID) error {
	var supermarket models.Supermarket
	if err := s.db.WithContext(ctx).First(&supermarket, "id = ?", id).Error; err != nil {
		return err
	}
	if !supermarket.IsActive {
		return nil
	}

	supermarket.IsActive = false
	if err := s.db.WithContext(ctx).Save(&supermarket).Error; err != nil {
		return err
	}

	s.cache.InvalidateAll(ctx)
	return nil
}
