package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, quantity, unitPrice, discount int64) SaleItem {
	t.Helper()
	item, err := NewSaleItem(uuid.New(), uuid.New(), "Product",
		nil, decimal.NewFromInt(quantity), decimal.NewFromInt(unitPrice), decimal.NewFromInt(discount))
	require.NoError(t, err)
	return *item
}

func TestComputeTotals(t *testing.T) {
	t.Run("two items no discount", func(t *testing.T) {
		items := []SaleItem{
			mustItem(t, 3, 10, 0),
			mustItem(t, 1, 50, 0),
		}

		totals, err := ComputeTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 1)
		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(80)), "subtotal: %s", totals.Subtotal)
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(80)), "total: %s", totals.TotalAmount)
		assert.True(t, totals.InstallmentValue.Equal(decimal.NewFromInt(80)))
	})

	t.Run("two installments halve the installment value", func(t *testing.T) {
		items := []SaleItem{
			mustItem(t, 3, 10, 0),
			mustItem(t, 1, 50, 0),
		}

		totals, err := ComputeTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 2)
		require.NoError(t, err)
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(80)))
		assert.True(t, totals.InstallmentValue.Equal(decimal.NewFromInt(40)))
	})

	t.Run("percent and fixed discounts combine", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 2, 100, 0)} // subtotal 200

		totals, err := ComputeTotals(items,
			decimal.NewFromInt(20),  // fixed discount
			decimal.NewFromInt(10),  // 10% of 200 = 20
			decimal.NewFromInt(15),  // shipping
			decimal.NewFromInt(5),   // other charges
			1)
		require.NoError(t, err)
		// 200 - (20 + 20) + 15 + 5 = 180
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(180)), "total: %s", totals.TotalAmount)
	})

	t.Run("item discount reduces subtotal", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 3, 10, 6)} // 30 - 6 = 24

		totals, err := ComputeTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 1)
		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(24)))
	})

	t.Run("installment value rounds to cents", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 1, 100, 0)}

		totals, err := ComputeTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 3)
		require.NoError(t, err)
		expected, _ := decimal.NewFromString("33.33")
		assert.True(t, totals.InstallmentValue.Equal(expected), "installment: %s", totals.InstallmentValue)
	})

	t.Run("rejects discount exceeding subtotal", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 1, 10, 0)}

		_, err := ComputeTotals(items, decimal.NewFromInt(50), decimal.Zero, decimal.Zero, decimal.Zero, 1)
		assert.Error(t, err)
	})

	t.Run("rejects invalid discount percent", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 1, 10, 0)}

		_, err := ComputeTotals(items, decimal.Zero, decimal.NewFromInt(101), decimal.Zero, decimal.Zero, 1)
		assert.Error(t, err)
	})

	t.Run("rejects zero installments", func(t *testing.T) {
		items := []SaleItem{mustItem(t, 1, 10, 0)}

		_, err := ComputeTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 0)
		assert.Error(t, err)
	})
}

func TestComputeTotalsFromSubtotal(t *testing.T) {
	t.Run("uses the stored subtotal without items", func(t *testing.T) {
		totals, err := ComputeTotalsFromSubtotal(
			decimal.NewFromInt(80), decimal.NewFromInt(10), decimal.Zero,
			decimal.NewFromInt(5), decimal.Zero, 2)
		require.NoError(t, err)
		// 80 - 10 + 5 = 75
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(75)))
		expected, _ := decimal.NewFromString("37.50")
		assert.True(t, totals.InstallmentValue.Equal(expected))
	})
}
