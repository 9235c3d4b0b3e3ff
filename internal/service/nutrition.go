package service

import (
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/types"
)

// NutritionPolicy fixes how recipe line amounts are converted to the
// per-100g/ml reference scale that ingredient nutrition is expressed in.
// It is passed explicitly to the services that need it so tests can swap
// alternate policies.
type NutritionPolicy struct {
	// ReferenceAmount is the baseline the per-unit nutrition values refer
	// to (100 grams or milliliters).
	ReferenceAmount float64
	// MassVolumeUnits are unit strings scaled as amount/ReferenceAmount.
	MassVolumeUnits map[string]bool
	// CountUnits are unit strings where one piece is treated as one full
	// reference amount, regardless of the line's amount.
	CountUnits map[string]bool
}

// DefaultNutritionPolicy returns the stock policy: "g" and "ml" scale by
// amount/100, "unit" counts as one reference amount, and anything else
// falls back to amount/100. The fallback is deliberate: unknown units are
// treated as mass rather than rejected.
func DefaultNutritionPolicy() NutritionPolicy {
	return NutritionPolicy{
		ReferenceAmount: 100,
		MassVolumeUnits: map[string]bool{"g": true, "ml": true},
		CountUnits:      map[string]bool{"unit": true},
	}
}

// Multiplier returns the factor applied to per-reference nutrition values
// for a line of the given amount and unit.
func (p NutritionPolicy) Multiplier(amount float64, unit string) float64 {
	if p.CountUnits[unit] {
		return 1.0
	}
	return amount / p.ReferenceAmount
}

// LineNutrition computes the nutrition contributed by amount/unit of the
// given ingredient.
func (p NutritionPolicy) LineNutrition(ing *models.Ingredient, amount float64, unit string) types.Nutrition {
	per := types.Nutrition{
		Calories: ing.CaloriesPer100g,
		Protein:  ing.ProteinPer100g,
		Carbs:    ing.CarbsPer100g,
		Fats:     ing.FatsPer100g,
	}
	return per.Scale(p.Multiplier(amount, unit))
}

// RecipeNutrition sums the nutrition of every line of a recipe. Lines whose
// ingredient is missing are skipped; the recipe's nutrition is computed from
// what can still be resolved.
func (p NutritionPolicy) RecipeNutrition(recipe *models.Recipe) types.Nutrition {
	var total types.Nutrition
	for _, line := range recipe.Lines {
		if line.Ingredient == nil {
			continue
		}
		total = total.Add(p.LineNutrition(line.Ingredient, line.Amount, line.Unit))
	}
	return total
}

// PerServing divides a recipe total by its serving count. Returns
// ErrZeroServings when servings is zero.
func (p NutritionPolicy) PerServing(total types.Nutrition, servings int) (types.Nutrition, error) {
	if servings == 0 {
		return types.Nutrition{}, ErrZeroServings
	}
	return total.Scale(1 / float64(servings)), nil
}
