package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current ProductStatus
		stock   int
		want    ProductStatus
	}{
		{"active to out of stock at zero", ProductStatusActive, 0, ProductStatusOutOfStock},
		{"out of stock back to active", ProductStatusOutOfStock, 3, ProductStatusActive},
		{"active stays active", ProductStatusActive, 10, ProductStatusActive},
		{"out of stock stays at zero", ProductStatusOutOfStock, 0, ProductStatusOutOfStock},
		{"draft never auto-transitions at zero", ProductStatusDraft, 0, ProductStatusDraft},
		{"draft never auto-transitions when stocked", ProductStatusDraft, 5, ProductStatusDraft},
		{"discontinued never auto-transitions at zero", ProductStatusDiscontinued, 0, ProductStatusDiscontinued},
		{"discontinued never auto-transitions when stocked", ProductStatusDiscontinued, 5, ProductStatusDiscontinued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.current, tt.stock))
		})
	}
}

func TestSetStock(t *testing.T) {
	p := Product{Status: ProductStatusActive, Stock: 5}

	require.NoError(t, p.SetStock(0))
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, ProductStatusOutOfStock, p.Status)

	require.NoError(t, p.SetStock(7))
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, ProductStatusActive, p.Status)

	err := p.SetStock(-1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestAdjustStock(t *testing.T) {
	t.Run("subtract clamps at zero", func(t *testing.T) {
		p := Product{Status: ProductStatusActive, Stock: 3}
		require.NoError(t, p.AdjustStock(10, StockOpSubtract))
		assert.Equal(t, 0, p.Stock)
		assert.Equal(t, ProductStatusOutOfStock, p.Status)
	})

	t.Run("add is unbounded and revives out-of-stock", func(t *testing.T) {
		p := Product{Status: ProductStatusOutOfStock, Stock: 0}
		require.NoError(t, p.AdjustStock(1000, StockOpAdd))
		assert.Equal(t, 1000, p.Stock)
		assert.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("negative delta rejected", func(t *testing.T) {
		p := Product{Status: ProductStatusActive, Stock: 3}
		err := p.AdjustStock(-1, StockOpAdd)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})

	t.Run("unknown operation rejected", func(t *testing.T) {
		p := Product{Status: ProductStatusActive, Stock: 3}
		err := p.AdjustStock(1, StockOp("multiply"))
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	p := Product{Status: ProductStatusActive, Stock: 4}

	p.SoftDelete()
	assert.True(t, p.IsDeleted)
	assert.Equal(t, ProductStatusDiscontinued, p.Status)

	// Stock changes do not touch a discontinued product.
	require.NoError(t, p.AdjustStock(4, StockOpSubtract))
	assert.Equal(t, ProductStatusDiscontinued, p.Status)

	p.Restore()
	assert.False(t, p.IsDeleted)
	assert.Equal(t, ProductStatusOutOfStock, p.Status)

	require.NoError(t, p.SetStock(2))
	p.SoftDelete()
	p.Restore()
	assert.Equal(t, ProductStatusActive, p.Status)
}

func TestDerivedFields(t *testing.T) {
	p := Product{Stock: 3, LowStockThreshold: 5, PurchasePrice: 60, SellingPrice: 100}

	assert.True(t, p.IsInStock())
	assert.True(t, p.IsLowStock())
	assert.Equal(t, "low-stock", p.StockStatus())
	assert.InDelta(t, 40.0, p.ProfitMargin(), 0.0001)

	p.Stock = 0
	assert.False(t, p.IsInStock())
	assert.False(t, p.IsLowStock())
	assert.Equal(t, "out-of-stock", p.StockStatus())

	p.Stock = 50
	assert.Equal(t, "in-stock", p.StockStatus())

	p.SellingPrice = 0
	assert.Equal(t, 0.0, p.ProfitMargin())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wireless-mouse", Slugify("Wireless Mouse"))
	assert.Equal(t, "usb-c-cable-2m", Slugify("  USB-C Cable (2m)! "))
	assert.Equal(t, "", Slugify("***"))
}

func TestParseProductStatus(t *testing.T) {
	status, err := ParseProductStatus("active")
	require.NoError(t, err)
	assert.Equal(t, ProductStatusActive, status)

	_, err = ParseProductStatus("on-hold")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidStatus, apperr.KindOf(err))
}
