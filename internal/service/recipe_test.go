package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/testhelpers"
	"github.com/grocerly/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateRecipeComputesNutrition(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	chicken := createTestIngredient(t, db, "Chicken breast", 165)
	rice := createTestIngredient(t, db, "Rice", 111)

	view, err := svc.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{
		Title:        "Chicken and rice",
		Instructions: "cook",
		Servings:     2,
		Lines: []types.RecipeLineRequest{
			{IngredientID: chicken.ID, Amount: 200, Unit: "g"},
			{IngredientID: rice.ID, Amount: 100, Unit: "g"},
		},
	})
	require.NoError(t, err)

	// 165*2 + 111*1 = 441 total, 220.5 per serving
	assert.Equal(t, 441.0, view.Total.Calories)
	assert.Equal(t, 220.5, view.PerServing.Calories)
	require.Len(t, view.Lines, 2)
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	chicken := createTestIngredient(t, db, "Chicken breast", 165)

	_, err := svc.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{
		Title:        "Broken",
		Instructions: "cook",
		Servings:     1,
		Lines: []types.RecipeLineRequest{
			{IngredientID: chicken.ID, Amount: 200, Unit: "g"},
			{IngredientID: uuid.New(), Amount: 100, Unit: "g"},
		},
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Transaction rolled back: nothing was created
	views, err := svc.ListRecipes(context.Background(), "", nil, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUpdateRecipeReplacesLines(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	chicken := createTestIngredient(t, db, "Chicken breast", 165)
	rice := createTestIngredient(t, db, "Rice", 111)

	view, err := svc.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{
		Title:        "Chicken",
		Instructions: "cook",
		Servings:     1,
		Lines: []types.RecipeLineRequest{
			{IngredientID: chicken.ID, Amount: 200, Unit: "g"},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(context.Background(), other.ID, view.ID, &types.UpdateRecipeRequest{})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateRecipe(context.Background(), user.ID, view.ID, &types.UpdateRecipeRequest{
		Lines: []types.RecipeLineRequest{
			{IngredientID: rice.ID, Amount: 100, Unit: "g"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, rice.ID, updated.Lines[0].IngredientID)
	assert.Equal(t, 111.0, updated.Total.Calories)
}

func TestDeleteRecipeRemovesLines(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewRecipeService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	chicken := createTestIngredient(t, db, "Chicken breast", 165)

	view, err := svc.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{
		Title:        "Chicken",
		Instructions: "cook",
		Servings:     1,
		Lines: []types.RecipeLineRequest{
			{IngredientID: chicken.ID, Amount: 200, Unit: "g"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(context.Background(), user.ID, view.ID))

	_, err = svc.GetRecipe(context.Background(), view.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Table("recipe_lines").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
