package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShoppingListItem is one aggregated (ingredient, unit) group.
type ShoppingListItem struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	TotalAmount    float64   `json:"total_amount"`
	Unit           string    `json:"unit"`
}

// ShoppingListResponse is the aggregated shopping list for a date range.
type ShoppingListResponse struct {
	StartDate  Date               `json:"start_date"`
	EndDate    Date               `json:"end_date"`
	Items      []ShoppingListItem `json:"items"`
	TotalItems int                `json:"total_items"`
}

// OptimizedShoppingListItem is a shopping list item with its cheapest-source
// assignment attached. The price fields are nil when no price is available.
type OptimizedShoppingListItem struct {
	IngredientID          uuid.UUID        `json:"ingredient_id"`
	IngredientName        string           `json:"ingredient_name"`
	TotalAmount           float64          `json:"total_amount"`
	Unit                  string           `json:"unit"`
	CheapestPrice         *decimal.Decimal `json:"cheapest_price,omitempty"`
	CheapestSupermarket   *string          `json:"cheapest_supermarket,omitempty"`
	CheapestSupermarketID *uuid.UUID       `json:"cheapest_supermarket_id,omitempty"`
	TotalCost             *decimal.Decimal `json:"total_cost,omitempty"`
}

// SupermarketTotal accumulates the cost of every item assigned to one
// supermarket.
type SupermarketTotal struct {
	SupermarketID   uuid.UUID       `json:"supermarket_id"`
	SupermarketName string          `json:"supermarket_name"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ItemCount       int             `json:"item_count"`
}

// OptimizedShoppingListResponse is the full purchase plan: per-item cheapest
// assignments, per-supermarket totals sorted by total price descending, and a
// human-readable recommendation.
type OptimizedShoppingListResponse struct {
	Items                   []OptimizedShoppingListItem `json:"items"`
	SupermarketTotals       []SupermarketTotal          `json:"supermarket_totals"`
	TotalOptimized          decimal.Decimal             `json:"total_optimized"`
	RecommendedDistribution string                      `json:"recommended_distribution"`
	TotalItems              int                         `json:"total_items"`
	ItemsWithPrices         int                         `json:"items_with_prices"`
	PotentialSavings        *string                     `json:"potential_savings,omitempty"`
}

// PriceView is a price row annotated with ingredient and supermarket names.
type PriceView struct {
	ID              uuid.UUID       `json:"id"`
	IngredientID    uuid.UUID       `json:"ingredient_id"`
	IngredientName  string          `json:"ingredient_name"`
	SupermarketID   uuid.UUID       `json:"supermarket_id"`
	SupermarketName string          `json:"supermarket_name"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	Unit            string          `json:"unit"`
	UserID          uuid.UUID       `json:"user_id"`
}

// ExclusionView is an exclusion row annotated with display names.
type ExclusionView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	IngredientID    uuid.UUID `json:"ingredient_id"`
	IngredientName  string    `json:"ingredient_name"`
	SupermarketID   uuid.UUID `json:"supermarket_id"`
	SupermarketName string    `json:"supermarket_name"`
	Reason          string    `json:"reason,omitempty"`
}
