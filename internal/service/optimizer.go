package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/types"
	"github.com/shopspring/decimal"
)

// PriceLookup is the price source the optimizer consumes. PriceService
// satisfies it; tests substitute a fixture.
type PriceLookup interface {
	GetCheapestPrice(ctx context.Context, ingredientID, userID uuid.UUID) (*types.PriceView, error)
}

// OptimizerConfig carries the presentation knobs for the purchase plan.
// Passing them explicitly keeps the optimizer deterministic under test.
type OptimizerConfig struct {
	CurrencySymbol string
	Precision      int32
}

// DefaultOptimizerConfig returns euro formatting with cent precision.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{CurrencySymbol: "€", Precision: 2}
}

// ShoppingOptimizer assigns each shopping list item to its cheapest
// supermarket and derives per-supermarket totals plus a purchase
// recommendation. Greedy per item; no attempt is made to minimize the number
// of supermarkets visited.
type ShoppingOptimizer struct {
	prices PriceLookup
	cfg    OptimizerConfig
}

// NewShoppingOptimizer creates a new ShoppingOptimizer instance
func NewShoppingOptimizer(prices PriceLookup, cfg OptimizerConfig) *ShoppingOptimizer {
	if cfg.Precision <= 0 {
		cfg.Precision = 2
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "€"
	}
	return &ShoppingOptimizer{prices: prices, cfg: cfg}
}

// Optimize builds the purchase plan for an aggregated shopping list. Items
// without any visible price keep nil price fields and are excluded from every
// total. All currency arithmetic is decimal; item cost is
// total_amount * price_per_unit rounded to the configured precision.
func (o *ShoppingOptimizer) Optimize(ctx context.Context, userID uuid.UUID, items []types.ShoppingListItem) (*types.OptimizedShoppingListResponse, error) {
	optimized := make([]types.OptimizedShoppingListItem, 0, len(items))
	totals := make(map[uuid.UUID]*types.SupermarketTotal)
	totalOptimized := decimal.Zero
	itemsWithPrices := 0

	for _, item := range items {
		out := types.OptimizedShoppingListItem{
			IngredientID:   item.IngredientID,
			IngredientName: item.IngredientName,
			TotalAmount:    item.TotalAmount,
			Unit:           item.Unit,
		}

		cheapest, err := o.prices.GetCheapestPrice(ctx, item.IngredientID, userID)
		if err != nil {
			return nil, err
		}
		if cheapest != nil {
			cost := decimal.NewFromFloat(item.TotalAmount).
				Mul(cheapest.PricePerUnit).
				Round(o.cfg.Precision)

			price := cheapest.PricePerUnit
			name := cheapest.SupermarketName
			id := cheapest.SupermarketID
			out.CheapestPrice = &price
			out.CheapestSupermarket = &name
			out.CheapestSupermarketID = &id
			out.TotalCost = &cost

			total, ok := totals[id]
			if !ok {
				total = &types.SupermarketTotal{
					SupermarketID:   id,
					SupermarketName: name,
					TotalPrice:      decimal.Zero,
				}
				totals[id] = total
			}
			total.TotalPrice = total.TotalPrice.Add(cost)
			total.ItemCount++

			totalOptimized = totalOptimized.Add(cost)
			itemsWithPrices++
		}

		optimized = append(optimized, out)
	}

	sorted := make([]types.SupermarketTotal, 0, len(totals))
	for _, total := range totals {
		sorted = append(sorted, *total)
	}
	// Descending by total; equal totals fall back to supermarket id so the
	// output is reproducible across runs.
	sort.Slice(sorted, func(i, j int) bool {
		cmp := sorted[i].TotalPrice.Cmp(sorted[j].TotalPrice)
		if cmp != 0 {
			return cmp > 0
		}
		return sorted[i].SupermarketID.String() < sorted[j].SupermarketID.String()
	})

	resp := &types.OptimizedShoppingListResponse{
		Items:                   optimized,
		SupermarketTotals:       sorted,
		TotalOptimized:          totalOptimized,
		RecommendedDistribution: o.recommendation(sorted),
		TotalItems:              len(items),
		ItemsWithPrices:         itemsWithPrices,
	}
	if itemsWithPrices > 0 {
		savings := fmt.Sprintf("optimized %d/%d items", itemsWithPrices, len(items))
		resp.PotentialSavings = &savings
	}
	return resp, nil
}

func (o *ShoppingOptimizer) money(v decimal.Decimal) string {
	return o.cfg.CurrencySymbol + v.StringFixed(o.cfg.Precision)
}

// recommendation phrases the per-supermarket totals, which arrive sorted by
// total price descending. Three or more supermarkets collapse everything past
// the top two into one aggregate clause.
func (o *ShoppingOptimizer) recommendation(totals []types.SupermarketTotal) string {
	switch len(totals) {
	case 0:
		return "No prices available for your shopping list. Add prices to get a purchase recommendation."
	case 1:
		t := totals[0]
		return fmt.Sprintf("Buy all %d priced %s at %s for %s.",
			t.ItemCount, itemWord(t.ItemCount), t.SupermarketName, o.money(t.TotalPrice))
	case 2:
		a, b := totals[0], totals[1]
		return fmt.Sprintf("Buy %d %s at %s (%s) and %d %s at %s (%s).",
			a.ItemCount, itemWord(a.ItemCount), a.SupermarketName, o.money(a.TotalPrice),
			b.ItemCount, itemWord(b.ItemCount), b.SupermarketName, o.money(b.TotalPrice))
	default:
		a, b := totals[0], totals[1]
		restCount := 0
		restTotal := decimal.Zero
		names := make([]string, 0, len(totals)-2)
		for _, t := range totals[2:] {
			restCount += t.ItemCount
			restTotal = restTotal.Add(t.TotalPrice)
			names = append(names, t.SupermarketName)
		}
		return fmt.Sprintf("Buy %d %s at %s (%s), %d %s at %s (%s), and %d %s across %s (%s).",
			a.ItemCount, itemWord(a.ItemCount), a.SupermarketName, o.money(a.TotalPrice),
			b.ItemCount, itemWord(b.ItemCount), b.SupermarketName, o.money(b.TotalPrice),
			restCount, itemWord(restCount), strings.Join(names, ", "), o.money(restTotal))
	}
}

func itemWord(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
