package service

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/types"
	"gorm.io/gorm"
)

// MealPlanService handles meal scheduling and shopping list aggregation
type MealPlanService struct {
	db        *gorm.DB
	nutrition NutritionPolicy
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB, nutrition NutritionPolicy) *MealPlanService {
	return &MealPlanService{
		db:        db,
		nutrition: nutrition,
	}
}

// AddEntry schedules a recipe on a date for a user. Servings defaults to 1.
func (s *MealPlanService) AddEntry(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*types.MealPlanEntryView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		return nil, err
	}

	servings := req.Servings
	if servings < 1 {
		servings = 1
	}

	entry := models.MealPlanEntry{
		UserID:   userID,
		RecipeID: req.RecipeID,
		Date:     req.Date.Time,
		MealType: req.MealType,
		Servings: servings,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return s.buildEntryView(ctx, &entry)
}

// ListEntries returns the user's meal plan entries within [start, end],
// ordered by date then meal type. Fails with ErrInvalidDateRange when end
// precedes start.
func (s *MealPlanService) ListEntries(ctx context.Context, userID uuid.UUID, start, end types.Date) ([]types.MealPlanEntryView, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	var entries []models.MealPlanEntry
	if err := s.db.WithContext(ctx).
		Preload("Recipe.Lines.Ingredient").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start.Time, end.Time).
		Order("date, meal_type").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	views := make([]types.MealPlanEntryView, 0, len(entries))
	for i := range entries {
		view, err := s.buildEntryView(ctx, &entries[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// UpdateEntry applies the provided fields to a meal plan entry. Owner only.
func (s *MealPlanService) UpdateEntry(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMealPlanRequest) (*types.MealPlanEntryView, error) {
	var entry models.MealPlanEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}

	if req.Date != nil {
		entry.Date = req.Date.Time
	}
	if req.MealType != nil && models.ValidMealType(*req.MealType) {
		entry.MealType = *req.MealType
	}
	if req.Servings != nil && *req.Servings >= 1 {
		entry.Servings = *req.Servings
	}
	if req.IsCooked != nil {
		entry.IsCooked = *req.IsCooked
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return s.buildEntryView(ctx, &entry)
}

// DeleteEntry removes a meal plan entry. Owner only.
func (s *MealPlanService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	var entry models.MealPlanEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.MealPlanEntry{}, "id = ?", id).Error
}

// aggregationKey merges shopping list lines. Unit matching is exact string
// equality: 200 "g" and 1 "unit" of the same ingredient stay separate items
// even when semantically convertible.
type aggregationKey struct {
	IngredientID uuid.UUID
	Unit         string
}

// BuildShoppingList aggregates every recipe line of the user's meal plan
// entries in [start, end] into one item per (ingredient, unit), amounts
// scaled by entry servings. An empty range yields an empty item list.
func (s *MealPlanService) BuildShoppingList(ctx context.Context, userID uuid.UUID, start, end types.Date) (*types.ShoppingListResponse, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	var entries []models.MealPlanEntry
	if err := s.db.WithContext(ctx).
		Preload("Recipe.Lines.Ingredient").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start.Time, end.Time).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	aggregated := make(map[aggregationKey]*types.ShoppingListItem)
	for _, entry := range entries {
		if entry.Recipe == nil {
			log.Printf("meal plan entry %s references missing recipe %s, skipping", entry.ID, entry.RecipeID)
			continue
		}
		for _, line := range entry.Recipe.Lines {
			if line.Ingredient == nil {
				log.Printf("recipe line %s references missing ingredient %s, skipping", line.ID, line.IngredientID)
				continue
			}
			scaled := line.Amount * float64(entry.Servings)
			key := aggregationKey{IngredientID: line.IngredientID, Unit: line.Unit}
			if item, ok := aggregated[key]; ok {
				item.TotalAmount += scaled
			} else {
				aggregated[key] = &types.ShoppingListItem{
					IngredientID:   line.IngredientID,
					IngredientName: line.Ingredient.Name,
					TotalAmount:    scaled,
					Unit:           line.Unit,
				}
			}
		}
	}

	items := make([]types.ShoppingListItem, 0, len(aggregated))
	for _, item := range aggregated {
		item.TotalAmount = math.Round(item.TotalAmount*100) / 100
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].IngredientName < items[j].IngredientName
	})

	return &types.ShoppingListResponse{
		StartDate:  start,
		EndDate:    end,
		Items:      items,
		TotalItems: len(items),
	}, nil
}

func (s *MealPlanService) buildEntryView(ctx context.Context, entry *models.MealPlanEntry) (*types.MealPlanEntryView, error) {
	recipe := entry.Recipe
	if recipe == nil {
		var loaded models.Recipe
		if err := s.db.WithContext(ctx).Preload("Lines.Ingredient").First(&loaded, "id = ?", entry.RecipeID).Error; err != nil {
			return nil, err
		}
		recipe = &loaded
	}

	total := s.nutrition.RecipeNutrition(recipe)
	perServing, err := s.nutrition.PerServing(total, recipe.Servings)
	if err != nil {
		return nil, err
	}
	scaled := perServing.Scale(float64(entry.Servings))

	return &types.MealPlanEntryView{
		ID:             entry.ID,
		UserID:         entry.UserID,
		RecipeID:       entry.RecipeID,
		Date:           types.Date{Time: entry.Date},
		MealType:       entry.MealType,
		Servings:       entry.Servings,
		IsCooked:       entry.IsCooked,
		RecipeTitle:    recipe.Title,
		RecipeImageURL: recipe.ImageURL,
		Nutrition:      scaled.Rounded(),
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}, nil
}
