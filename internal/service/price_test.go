package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grocerly/backend/internal/models"
	"github.com/grocerly/backend/internal/testhelpers"
	"github.com/grocerly/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestSupermarket(t *testing.T, db *gorm.DB, name string) *models.Supermarket {
	t.Helper()
	s := models.Supermarket{Name: name, IsActive: true}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func upsertPrice(t *testing.T, svc *PriceService, userID uuid.UUID, ingredientID, supermarketID uuid.UUID, amount string) *types.PriceView {
	t.Helper()
	view, err := svc.UpsertPrice(context.Background(), userID, &types.UpsertPriceRequest{
		IngredientID:  ingredientID,
		SupermarketID: supermarketID,
		PricePerUnit:  decimal.RequireFromString(amount),
		Unit:          models.UnitKg,
	})
	require.NoError(t, err)
	return view
}

func TestGetCheapestPriceAcrossUsers(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)
	jumbo := createTestSupermarket(t, db, "Jumbo")
	lidl := createTestSupermarket(t, db, "Lidl")

	// Community pricing: bob's submission is visible to alice
	upsertPrice(t, svc, alice.ID, milk.ID, jumbo.ID, "1.49")
	upsertPrice(t, svc, bob.ID, milk.ID, lidl.ID, "1.19")

	cheapest, err := svc.GetCheapestPrice(context.Background(), milk.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.Equal(t, lidl.ID, cheapest.SupermarketID)
	assert.True(t, cheapest.PricePerUnit.Equal(decimal.RequireFromString("1.19")))
}

func TestGetCheapestPriceNoneAvailable(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	user := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)

	cheapest, err := svc.GetCheapestPrice(context.Background(), milk.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, cheapest)
}

func TestGetPricesFiltersInactiveSupermarkets(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	user := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)
	jumbo := createTestSupermarket(t, db, "Jumbo")
	lidl := createTestSupermarket(t, db, "Lidl")

	upsertPrice(t, svc, user.ID, milk.ID, jumbo.ID, "1.49")
	upsertPrice(t, svc, user.ID, milk.ID, lidl.ID, "0.99")

	require.NoError(t, db.Model(&models.Supermarket{}).Where("id = ?", lidl.ID).Update("is_active", false).Error)

	prices, err := svc.GetPricesForIngredient(context.Background(), milk.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, jumbo.ID, prices[0].SupermarketID)

	// The deactivated supermarket's price row is kept, only hidden
	var count int64
	require.NoError(t, db.Model(&models.IngredientPrice{}).Where("supermarket_id = ?", lidl.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetPricesFiltersUserExclusions(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	exclusions := NewExclusionService(db, nil)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)
	jumbo := createTestSupermarket(t, db, "Jumbo")

	upsertPrice(t, svc, alice.ID, milk.ID, jumbo.ID, "1.49")

	_, err := exclusions.AddExclusion(context.Background(), alice.ID, &types.CreateExclusionRequest{
		IngredientID:  milk.ID,
		SupermarketID: jumbo.ID,
		Reason:        "bad quality",
	})
	require.NoError(t, err)

	// Excluding the only priced supermarket leaves alice with no price
	cheapest, err := svc.GetCheapestPrice(context.Background(), milk.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, cheapest)

	// The exclusion is personal: bob still sees the price
	cheapest, err = svc.GetCheapestPrice(context.Background(), milk.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.Equal(t, jumbo.ID, cheapest.SupermarketID)
}

func TestUpsertPriceReplacesExistingRow(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	user := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)
	jumbo := createTestSupermarket(t, db, "Jumbo")

	first := upsertPrice(t, svc, user.ID, milk.ID, jumbo.ID, "1.49")
	second := upsertPrice(t, svc, user.ID, milk.ID, jumbo.ID, "1.29")

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.PricePerUnit.Equal(decimal.RequireFromString("1.29")))

	var count int64
	require.NoError(t, db.Model(&models.IngredientPrice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertPriceUnknownReferences(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	user := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)

	_, err := svc.UpsertPrice(context.Background(), user.ID, &types.UpsertPriceRequest{
		IngredientID:  uuid.New(),
		SupermarketID: uuid.New(),
		PricePerUnit:  decimal.RequireFromString("1.00"),
		Unit:          models.UnitKg,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.UpsertPrice(context.Background(), user.ID, &types.UpsertPriceRequest{
		IngredientID:  milk.ID,
		SupermarketID: uuid.New(),
		PricePerUnit:  decimal.RequireFromString("1.00"),
		Unit:          models.UnitKg,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletePriceSubmitterOnly(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewPriceService(db, nil)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	milk := createTestIngredient(t, db, "Milk", 61)
	jumbo := createTestSupermarket(t, db, "Jumbo")

	view := upsertPrice(t, svc, alice.ID, milk.ID, jumbo.ID, "1.49")

	err := svc.DeletePrice(context.Background(), bob.ID, view.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeletePrice(context.Background(), alice.ID, view.ID))

	cheapest, err := svc.GetCheapestPrice(context.Background(), milk.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, cheapest)
}
