package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or the pool hands out fresh empty in-memory databases.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestApplyDecrements(t *testing.T) {
	db := testDB(t)
	a := seedProduct(t, db, models.Product{
		Name: "A", SKU: "AAA-0001-AAA", SellingPrice: 10,
		Stock: 10, Status: models.ProductStatusActive,
	})
	b := seedProduct(t, db, models.Product{
		Name: "B", SKU: "BBB-0002-BBB", SellingPrice: 20,
		Stock: 2, Status: models.ProductStatusActive,
	})

	result, err := ApplyDecrements(db, []StockChange{
		{ProductID: a.ID, Quantity: 4},
		{ProductID: b.ID, Quantity: 2},
	})
	require.NoError(t, err)
	assert.True(t, result.AllApplied())
	assert.Equal(t, 2, result.Applied)

	var gotA, gotB models.Product
	require.NoError(t, db.First(&gotA, a.ID).Error)
	require.NoError(t, db.First(&gotB, b.ID).Error)
	assert.Equal(t, 6, gotA.Stock)
	assert.Equal(t, models.ProductStatusActive, gotA.Status)
	// B hit zero and must flip to OUT_OF_STOCK in the same statement.
	assert.Equal(t, 0, gotB.Stock)
	assert.Equal(t, models.ProductStatusOutOfStock, gotB.Status)
}

func TestApplyDecrementsInsufficientStock(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, models.Product{
		Name: "A", SKU: "AAA-0001-AAA", SellingPrice: 10,
		Stock: 10, Status: models.ProductStatusActive,
	})

	// Two sequential over-subscribed decrements: the first fits, the second
	// must be rejected rather than driving stock negative.
	first, err := ApplyDecrements(db, []StockChange{{ProductID: p.ID, Quantity: 7}})
	require.NoError(t, err)
	assert.True(t, first.AllApplied())

	second, err := ApplyDecrements(db, []StockChange{{ProductID: p.ID, Quantity: 7}})
	require.NoError(t, err)
	assert.False(t, second.AllApplied())
	require.Len(t, second.Items, 1)
	assert.False(t, second.Items[0].Applied)
	assert.Equal(t, "insufficient stock", second.Items[0].Reason)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 3, got.Stock)
}

func TestApplyDecrementsPartialResult(t *testing.T) {
	db := testDB(t)
	ok := seedProduct(t, db, models.Product{
		Name: "OK", SKU: "AAA-0001-AAA", SellingPrice: 10,
		Stock: 5, Status: models.ProductStatusActive,
	})
	deleted := seedProduct(t, db, models.Product{
		Name: "Gone", SKU: "BBB-0002-BBB", SellingPrice: 10,
		Stock: 5, Status: models.ProductStatusDiscontinued, IsDeleted: true,
	})

	result, err := ApplyDecrements(db, []StockChange{
		{ProductID: ok.ID, Quantity: 1},
		{ProductID: deleted.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
		{ProductID: ok.ID, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Items, 4)
	assert.True(t, result.Items[0].Applied)
	assert.Equal(t, "product is deleted", result.Items[1].Reason)
	assert.Equal(t, "product not found", result.Items[2].Reason)
	assert.Equal(t, "quantity must be positive", result.Items[3].Reason)
}

func TestApplyIncrements(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, models.Product{
		Name: "A", SKU: "AAA-0001-AAA", SellingPrice: 10,
		Stock: 0, Status: models.ProductStatusOutOfStock,
	})
	draft := seedProduct(t, db, models.Product{
		Name: "D", SKU: "BBB-0002-BBB", SellingPrice: 10,
		Stock: 0, Status: models.ProductStatusDraft,
	})

	result, err := ApplyIncrements(db, []StockChange{
		{ProductID: p.ID, Quantity: 3},
		{ProductID: draft.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.True(t, result.AllApplied())

	var got, gotDraft models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	require.NoError(t, db.First(&gotDraft, draft.ID).Error)
	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, models.ProductStatusActive, got.Status)
	// DRAFT gets its stock back but stays DRAFT.
	assert.Equal(t, 3, gotDraft.Stock)
	assert.Equal(t, models.ProductStatusDraft, gotDraft.Status)
}
