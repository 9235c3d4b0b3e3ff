package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/testhelpers"
	"github.com/grocerly/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string, calories float64) *models.Ingredient {
	t.Helper()
	ing := models.Ingredient{
		Name:            name,
		CaloriesPer100g: calories,
		IsPublic:        true,
	}
	require.NoError(t, db.Create(&ing).Error)
	return &ing
}

type testLine struct {
	ingredient *models.Ingredient
	amount     float64
	unit       string
}

func createTestRecipe(t *testing.T, db *gorm.DB, author uuid.UUID, servings int, lines ...testLine) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Title:        "Recipe " + uuid.NewString()[:8],
		Instructions: "cook it",
		Servings:     servings,
		IsPublic:     true,
		AuthorID:     author,
	}
	require.NoError(t, db.Create(&recipe).Error)
	for _, line := range lines {
		rl := models.RecipeLine{
			RecipeID:     recipe.ID,
			IngredientID: line.ingredient.ID,
			Amount:       line.amount,
			Unit:         line.unit,
		}
		require.NoError(t, db.Create(&rl).Error)
	}
	return &recipe
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func addEntry(t *testing.T, svc *MealPlanService, userID uuid.UUID, recipeID uuid.UUID, day string, servings int) {
	t.Helper()
	_, err := svc.AddEntry(context.Background(), userID, &types.CreateMealPlanRequest{
		RecipeID: recipeID,
		Date:     date(t, day),
		MealType: models.MealTypeDinner,
		Servings: servings,
	})
	require.NoError(t, err)
}

func TestBuildShoppingListMergesSameIngredientAndUnit(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	flour := createTestIngredient(t, db, "Flour", 364)
	recipe := createTestRecipe(t, db, user.ID, 1, testLine{flour, 150, "g"})

	addEntry(t, svc, user.ID, recipe.ID, "2026-08-01", 2)
	addEntry(t, svc, user.ID, recipe.ID, "2026-08-02", 1)

	list, err := svc.BuildShoppingList(context.Background(), user.ID, date(t, "2026-08-01"), date(t, "2026-08-07"))
	require.NoError(t, err)

	require.Len(t, list.Items, 1)
	assert.Equal(t, flour.ID, list.Items[0].IngredientID)
	assert.Equal(t, "Flour", list.Items[0].IngredientName)
	assert.Equal(t, 450.0, list.Items[0].TotalAmount)
	assert.Equal(t, "g", list.Items[0].Unit)
	assert.Equal(t, 1, list.TotalItems)
}

func TestBuildShoppingListKeepsDifferentUnitsSeparate(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	egg := createTestIngredient(t, db, "Egg", 155)
	weighed := createTestRecipe(t, db, user.ID, 1, testLine{egg, 200, "g"})
	counted := createTestRecipe(t, db, user.ID, 1, testLine{egg, 2, "unit"})

	addEntry(t, svc, user.ID, weighed.ID, "2026-08-01", 1)
	addEntry(t, svc, user.ID, counted.ID, "2026-08-01", 1)

	list, err := svc.BuildShoppingList(context.Background(), user.ID, date(t, "2026-08-01"), date(t, "2026-08-01"))
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	units := map[string]float64{}
	for _, item := range list.Items {
		units[item.Unit] = item.TotalAmount
	}
	assert.Equal(t, 200.0, units["g"])
	assert.Equal(t, 2.0, units["unit"])
}

func TestBuildShoppingListAmountsAreConserved(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	rice := createTestIngredient(t, db, "Rice", 111)
	beans := createTestIngredient(t, db, "Beans", 120)
	r1 := createTestRecipe(t, db, user.ID, 1, testLine{rice, 80, "g"}, testLine{beans, 60, "g"})
	r2 := createTestRecipe(t, db, user.ID, 1, testLine{rice, 40, "g"})

	addEntry(t, svc, user.ID, r1.ID, "2026-08-01", 3) // rice 240, beans 180
	addEntry(t, svc, user.ID, r2.ID, "2026-08-02", 2) // rice 80

	list, err := svc.BuildShoppingList(context.Background(), user.ID, date(t, "2026-08-01"), date(t, "2026-08-03"))
	require.NoError(t, err)

	var sum float64
	for _, item := range list.Items {
		sum += item.TotalAmount
	}
	assert.Equal(t, 500.0, sum)
	// Sorted by ingredient name
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Beans", list.Items[0].IngredientName)
	assert.Equal(t, "Rice", list.Items[1].IngredientName)
}

func TestBuildShoppingListEmptyRange(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)

	list, err := svc.BuildShoppingList(context.Background(), user.ID, date(t, "2026-08-01"), date(t, "2026-08-07"))
	require.NoError(t, err)

	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.TotalItems)
}

func TestBuildShoppingListInvalidRange(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)

	_, err := svc.BuildShoppingList(context.Background(), user.ID, date(t, "2026-08-07"), date(t, "2026-08-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.ListEntries(context.Background(), user.ID, date(t, "2026-08-07"), date(t, "2026-08-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestAddEntryDefaultsServingsToOne(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	user := createTestUser(t, db)
	ing := createTestIngredient(t, db, "Oats", 389)
	recipe := createTestRecipe(t, db, user.ID, 2, testLine{ing, 100, "g"})

	entry, err := svc.AddEntry(context.Background(), user.ID, &types.CreateMealPlanRequest{
		RecipeID: recipe.ID,
		Date:     date(t, "2026-08-01"),
		MealType: models.MealTypeBreakfast,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Servings)
}

func TestUpdateEntryOwnerOnly(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewMealPlanService(db, DefaultNutritionPolicy())
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	ing := createTestIngredient(t, db, "Tomato", 18)
	recipe := createTestRecipe(t, db, owner.ID, 1, testLine{ing, 100, "g"})

	entry, err := svc.AddEntry(context.Background(), owner.ID, &types.CreateMealPlanRequest{
		RecipeID: recipe.ID,
		Date:     date(t, "2026-08-01"),
		MealType: models.MealTypeLunch,
		Servings: 1,
	})
	require.NoError(t, err)

	cooked := true
	_, err = svc.UpdateEntry(context.Background(), other.ID, entry.ID, &types.UpdateMealPlanRequest{IsCooked: &cooked})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteEntry(context.Background(), other.ID, entry.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateEntry(context.Background(), owner.ID, entry.ID, &types.UpdateMealPlanRequest{IsCooked: &cooked})
	require.NoError(t, err)
	assert.True(t, updated.IsCooked)
}
