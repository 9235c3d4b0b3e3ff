package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	CaloriesPer100g float64 `json:"calories_per_100g" binding:"min=0"`
	ProteinPer100g  float64 `json:"protein_per_100g" binding:"min=0"`
	CarbsPer100g    float64 `json:"carbs_per_100g" binding:"min=0"`
	FatsPer100g     float64 `json:"fats_per_100g" binding:"min=0"`
	IsPublic        *bool   `json:"is_public"`
}

// RecipeLineRequest is one (ingredient, amount, unit) line of a recipe
type RecipeLineRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
	Amount       float64   `json:"amount" binding:"required,gt=0"`
	Unit         string    `json:"unit" binding:"required,max=50"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title           string              `json:"title" binding:"required,max=255"`
	Description     string              `json:"description"`
	Instructions    string              `json:"instructions" binding:"required"`
	PrepTimeMinutes int                 `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes int                 `json:"cook_time_minutes" binding:"min=0"`
	Servings        int                 `json:"servings" binding:"required,min=1"`
	ImageURL        string              `json:"image_url"`
	IsPublic        *bool               `json:"is_public"`
	Lines           []RecipeLineRequest `json:"lines" binding:"required,dive"`
}

// UpdateRecipeRequest carries optional fields; only set fields are applied.
type UpdateRecipeRequest struct {
	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Instructions    *string             `json:"instructions,omitempty"`
	PrepTimeMinutes *int                `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                `json:"cook_time_minutes,omitempty"`
	Servings        *int                `json:"servings,omitempty"`
	ImageURL        *string             `json:"image_url,omitempty"`
	IsPublic        *bool               `json:"is_public,omitempty"`
	Lines           []RecipeLineRequest `json:"lines,omitempty"`
}

// CreateMealPlanRequest represents the request body for scheduling a meal
type CreateMealPlanRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	Date     Date      `json:"date" binding:"required"`
	MealType string    `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Servings int       `json:"servings"`
}

// UpdateMealPlanRequest carries optional fields; only set fields are applied.
type UpdateMealPlanRequest struct {
	Date     *Date   `json:"date,omitempty"`
	MealType *string `json:"meal_type,omitempty"`
	Servings *int    `json:"servings,omitempty"`
	IsCooked *bool   `json:"is_cooked,omitempty"`
}

// UpsertPriceRequest represents the request body for submitting a price
type UpsertPriceRequest struct {
	IngredientID  uuid.UUID       `json:"ingredient_id" binding:"required"`
	SupermarketID uuid.UUID       `json:"supermarket_id" binding:"required"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit" binding:"required"`
	Unit          string          `json:"unit" binding:"required,oneof=kg L unit"`
}

// CreateExclusionRequest represents the request body for adding an exclusion
type CreateExclusionRequest struct {
	IngredientID  uuid.UUID `json:"ingredient_id" binding:"required"`
	SupermarketID uuid.UUID `json:"supermarket_id" binding:"required"`
	Reason        string    `json:"reason" binding:"max=255"`
}

// CreateSupermarketRequest represents the request body for creating a supermarket
type CreateSupermarketRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

// UpdateSupermarketRequest carries optional fields; only set fields are applied.
type UpdateSupermarketRequest struct {
	Name     *string `json:"name,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
