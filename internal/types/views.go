package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeLineView is a recipe line annotated with its ingredient name and the
// nutrition contributed by that line.
type RecipeLineView struct {
	ID             uuid.UUID `json:"id"`
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Amount         float64   `json:"amount"`
	Unit           string    `json:"unit"`
	Nutrition      Nutrition `json:"nutrition"`
}

// RecipeView is a recipe with computed nutrition totals.
type RecipeView struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Instructions    string           `json:"instructions"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	CookTimeMinutes int              `json:"cook_time_minutes"`
	Servings        int              `json:"servings"`
	ImageURL        string           `json:"image_url"`
	IsPublic        bool             `json:"is_public"`
	AuthorID        uuid.UUID        `json:"author_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Lines           []RecipeLineView `json:"lines"`
	Total           Nutrition        `json:"total_nutrition"`
	PerServing      Nutrition        `json:"per_serving_nutrition"`
}

// MealPlanEntryView is a meal plan entry enriched with recipe info and
// nutrition scaled by the entry's servings.
type MealPlanEntryView struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	RecipeID       uuid.UUID `json:"recipe_id"`
	Date           Date      `json:"date"`
	MealType       string    `json:"meal_type"`
	Servings       int       `json:"servings"`
	IsCooked       bool      `json:"is_cooked"`
	RecipeTitle    string    `json:"recipe_title"`
	RecipeImageURL string    `json:"recipe_image_url,omitempty"`
	Nutrition      Nutrition `json:"nutrition"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
