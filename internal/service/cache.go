package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/types"
	"github.com/redis/go-redis/v9"
)

// priceCache is a best-effort Redis cache for per-ingredient price views.
// A nil client disables caching entirely; every operation degrades to a
// no-op so unit tests and local setups run without Redis.
type priceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newPriceCache(client *redis.Client, ttl time.Duration) *priceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &priceCache{client: client, ttl: ttl}
}

func priceKey(ingredientID, userID uuid.UUID) string {
	return fmt.Sprintf("prices:%s:%s", ingredientID, userID)
}

func (c *priceCache) Get(ctx context.Context, ingredientID, userID uuid.UUID) ([]types.PriceView, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, priceKey(ingredientID, userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var views []types.PriceView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, false
	}
	return views, true
}

func (c *priceCache) Set(ctx context.Context, ingredientID, userID uuid.UUID, views []types.PriceView) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, priceKey(ingredientID, userID), data, c.ttl).Err(); err != nil {
		log.Printf("price cache set failed: %v", err)
	}
}

// InvalidateIngredient drops cached views for one ingredient across all
// users (price rows are community-visible, so any price write affects
// every user's view).
func (c *priceCache) InvalidateIngredient(ctx context.Context, ingredientID uuid.UUID) {
	c.invalidatePattern(ctx, fmt.Sprintf("prices:%s:*", ingredientID))
}

// InvalidateUserIngredient drops the cached view for one (ingredient, user)
// pair. Used by exclusion writes, which only change that user's view.
func (c *priceCache) InvalidateUserIngredient(ctx context.Context, ingredientID, userID uuid.UUID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, priceKey(ingredientID, userID)).Err(); err != nil {
		log.Printf("price cache invalidation failed: %v", err)
	}
}

// InvalidateAll drops every cached price view. Used when a supermarket is
// created, updated or deactivated, which can affect any ingredient.
func (c *priceCache) InvalidateAll(ctx context.Context) {
	c.invalidatePattern(ctx, "prices:*")
}

func (c *priceCache) invalidatePattern(ctx context.Context, pattern string) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("price cache invalidation failed: %v", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("price cache scan failed: %v", err)
	}
}
