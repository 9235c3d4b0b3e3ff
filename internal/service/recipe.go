package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/types"
	"gorm.io/gorm"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db        *gorm.DB
	nutrition NutritionPolicy
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, nutrition NutritionPolicy) *RecipeService {
	return &RecipeService{
		db:        db,
		nutrition: nutrition,
	}
}

// CreateRecipe creates a recipe together with its ingredient lines. Every
// referenced ingredient must exist.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeView, error) {
	recipe := models.Recipe{
		Title:           req.Title,
		Description:     req.Description,
		Instructions:    req.Instructions,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		ImageURL:        req.ImageURL,
		IsPublic:        true,
		AuthorID:        userID,
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for _, line := range req.Lines {
			var ing models.Ingredient
			if err := tx.First(&ing, "id = ?", line.IngredientID).Error; err != nil {
				return err
			}
			rl := models.RecipeLine{
				RecipeID:     recipe.ID,
				IngredientID: line.IngredientID,
				Amount:       line.Amount,
				Unit:         line.Unit,
			}
			if err := tx.Create(&rl).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe with its lines and computed nutrition
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Lines.Ingredient").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return s.buildView(&recipe)
}

// ListRecipes lists public recipes, optionally filtered by a title search or
// an author.
func (s *RecipeService) ListRecipes(ctx context.Context, search string, authorID *uuid.UUID, offset, limit int) ([]types.RecipeView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Where("is_public = ?", true)
	if search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}

	var recipes []models.Recipe
	if err := query.Preload("Lines.Ingredient").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := s.buildView(&recipes[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// UpdateRecipe applies the provided fields to a recipe owned by userID.
// When lines are provided, the existing lines are replaced wholesale.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *req.CookTimeMinutes
	}
	if req.Servings != nil && *req.Servings >= 1 {
		recipe.Servings = *req.Servings
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if req.Lines == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeLine{}).Error; err != nil {
			return err
		}
		for _, line := range req.Lines {
			var ing models.Ingredient
			if err := tx.First(&ing, "id = ?", line.IngredientID).Error; err != nil {
				return err
			}
			rl := models.RecipeLine{
				RecipeID:     recipe.ID,
				IngredientID: line.IngredientID,
				Amount:       line.Amount,
				Unit:         line.Unit,
			}
			if err := tx.Create(&rl).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe and its lines. Owner only.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

func (s *RecipeService) buildView(recipe *models.Recipe) (*types.RecipeView, error) {
	total := s.nutrition.RecipeNutrition(recipe)
	perServing, err := s.nutrition.PerServing(total, recipe.Servings)
	if err != nil {
		return nil, err
	}

	lines := make([]types.RecipeLineView, 0, len(recipe.Lines))
	for _, line := range recipe.Lines {
		lv := types.RecipeLineView{
			ID:           line.ID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			Unit:         line.Unit,
		}
		if line.Ingredient != nil {
			lv.IngredientName = line.Ingredient.Name
			lv.Nutrition = s.nutrition.LineNutrition(line.Ingredient, line.Amount, line.Unit).Rounded()
		}
		lines = append(lines, lv)
	}

	return &types.RecipeView{
		ID:              recipe.ID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		Instructions:    recipe.Instructions,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		ImageURL:        recipe.ImageURL,
		IsPublic:        recipe.IsPublic,
		AuthorID:        recipe.AuthorID,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
		Lines:           lines,
		Total:           total.Rounded(),
		PerServing:      perServing.Rounded(),
	}, nil
}
