package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/testhelpers"
	"github.com/grocerly/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type plannerFixture struct {
	engine *gin.Engine
	db     *gorm.DB
	token  string
	userID uuid.UUID

	planner *service.MealPlanService
	prices  *service.PriceService
}

func setupPlannerFixture(t *testing.T) *plannerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)
	nutrition := service.DefaultNutritionPolicy()

	auth := service.NewAuthService(db, "test-secret")
	planner := service.NewMealPlanService(db, nutrition)
	prices := service.NewPriceService(db, nil)
	optimizer := service.NewShoppingOptimizer(prices, service.DefaultOptimizerConfig())

	token, err := auth.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	NewMealPlanHandler(planner, optimizer, auth).RegisterRoutes(v1)

	return &plannerFixture{
		engine:  engine,
		db:      db,
		token:   token,
		userID:  claims.UserID,
		planner: planner,
		prices:  prices,
	}
}

func (f *plannerFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *plannerFixture) seedPlan(t *testing.T) *models.Ingredient {
	t.Helper()
	flour := models.Ingredient{Name: "Flour", CaloriesPer100g: 364, IsPublic: true}
	require.NoError(t, f.db.Create(&flour).Error)

	recipe := models.Recipe{Title: "Bread", Instructions: "bake", Servings: 1, AuthorID: f.userID, IsPublic: true}
	require.NoError(t, f.db.Create(&recipe).Error)
	require.NoError(t, f.db.Create(&models.RecipeLine{
		RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 150, Unit: "g",
	}).Error)

	for day, servings := range map[string]int{"2026-08-01": 2, "2026-08-02": 1} {
		d, err := types.ParseDate(day)
		require.NoError(t, err)
		_, err = f.planner.AddEntry(context.Background(), f.userID, &types.CreateMealPlanRequest{
			RecipeID: recipe.ID,
			Date:     d,
			MealType: models.MealTypeDinner,
			Servings: servings,
		})
		require.NoError(t, err)
	}
	return &flour
}

func TestShoppingListEndpoint(t *testing.T) {
	f := setupPlannerFixture(t)
	f.seedPlan(t)

	w := f.get(t, "/api/v1/planner/shopping-list?start_date=2026-08-01&end_date=2026-08-07")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ShoppingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Flour", resp.Items[0].IngredientName)
	assert.Equal(t, 450.0, resp.Items[0].TotalAmount)
	assert.Equal(t, "g", resp.Items[0].Unit)
	assert.Equal(t, 1, resp.TotalItems)
}

func TestShoppingListRejectsBadDates(t *testing.T) {
	f := setupPlannerFixture(t)

	w := f.get(t, "/api/v1/planner/shopping-list?start_date=nonsense&end_date=2026-08-07")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.get(t, "/api/v1/planner/shopping-list?start_date=2026-08-07&end_date=2026-08-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.get(t, "/api/v1/planner/shopping-list/optimized?start_date=2026-08-07&end_date=2026-08-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShoppingListRequiresAuth(t *testing.T) {
	f := setupPlannerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/planner/shopping-list?start_date=2026-08-01&end_date=2026-08-07", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptimizedShoppingListEndpoint(t *testing.T) {
	f := setupPlannerFixture(t)
	flour := f.seedPlan(t)

	market := models.Supermarket{Name: "Jumbo", IsActive: true}
	require.NoError(t, f.db.Create(&market).Error)
	_, err := f.prices.UpsertPrice(context.Background(), f.userID, &types.UpsertPriceRequest{
		IngredientID:  flour.ID,
		SupermarketID: market.ID,
		PricePerUnit:  decimal.RequireFromString("0.01"),
		Unit:          models.UnitKg,
	})
	require.NoError(t, err)

	w := f.get(t, "/api/v1/planner/shopping-list/optimized?start_date=2026-08-01&end_date=2026-08-07")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.OptimizedShoppingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Items[0].TotalCost)
	// 450 * 0.01 = 4.50
	assert.True(t, resp.Items[0].TotalCost.Equal(decimal.RequireFromString("4.50")))
	require.Len(t, resp.SupermarketTotals, 1)
	assert.Equal(t, "Jumbo", resp.SupermarketTotals[0].SupermarketName)
	assert.Equal(t, 1, resp.ItemsWithPrices)
	require.NotNil(t, resp.PotentialSavings)
	assert.Equal(t, "optimized 1/1 items", *resp.PotentialSavings)
	assert.Contains(t, resp.RecommendedDistribution, "Jumbo")
}

func TestOptimizedShoppingListNullFieldsWhenExcluded(t *testing.T) {
	f := setupPlannerFixture(t)
	flour := f.seedPlan(t)

	market := models.Supermarket{Name: "Jumbo", IsActive: true}
	require.NoError(t, f.db.Create(&market).Error)
	_, err := f.prices.UpsertPrice(context.Background(), f.userID, &types.UpsertPriceRequest{
		IngredientID:  flour.ID,
		SupermarketID: market.ID,
		PricePerUnit:  decimal.RequireFromString("0.01"),
		Unit:          models.UnitKg,
	})
	require.NoError(t, err)

	exclusions := service.NewExclusionService(f.db, nil)
	_, err = exclusions.AddExclusion(context.Background(), f.userID, &types.CreateExclusionRequest{
		IngredientID:  flour.ID,
		SupermarketID: market.ID,
	})
	require.NoError(t, err)

	w := f.get(t, "/api/v1/planner/shopping-list/optimized?start_date=2026-08-01&end_date=2026-08-07")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.OptimizedShoppingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].CheapestPrice)
	assert.Nil(t, resp.Items[0].TotalCost)
	assert.Equal(t, 0, resp.ItemsWithPrices)
	assert.Nil(t, resp.PotentialSavings)
	assert.Empty(t, resp.SupermarketTotals)
}
