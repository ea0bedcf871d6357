package inventory

import (
	"testing"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStock(t *testing.T, quantity int64) *StockByLocation {
	t.Helper()
	stock, err := NewStockByLocation(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(quantity))
	require.NoError(t, err)
	return stock
}

func TestNewStockByLocation(t *testing.T) {
	t.Run("rejects negative initial quantity", func(t *testing.T) {
		_, err := NewStockByLocation(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewStockByLocation(uuid.New(), uuid.Nil, uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestStockByLocation_CanFulfill(t *testing.T) {
	stock := newTestStock(t, 3)

	assert.True(t, stock.CanFulfill(decimal.NewFromInt(3)))
	assert.True(t, stock.CanFulfill(decimal.NewFromInt(2)))
	assert.False(t, stock.CanFulfill(decimal.NewFromInt(4)))
}

func TestStockByLocation_Decrease(t *testing.T) {
	t.Run("decrements to zero", func(t *testing.T) {
		stock := newTestStock(t, 3)
		require.NoError(t, stock.Decrease(decimal.NewFromInt(3)))
		assert.True(t, stock.Quantity.IsZero())
	})

	t.Run("insufficient stock leaves quantity unchanged", func(t *testing.T) {
		stock := newTestStock(t, 2)
		err := stock.Decrease(decimal.NewFromInt(3))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(2)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		stock := newTestStock(t, 2)
		assert.Error(t, stock.Decrease(decimal.Zero))
		assert.Error(t, stock.Decrease(decimal.NewFromInt(-1)))
	})
}

func TestStockByLocation_RoundTrip(t *testing.T) {
	// confirm then cancel must restore the pre-confirm quantity
	stock := newTestStock(t, 10)
	qty := decimal.NewFromInt(7)

	require.NoError(t, stock.Decrease(qty))
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(3)))

	require.NoError(t, stock.Increase(qty))
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestNewStockMovement(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	locationID := uuid.New()

	t.Run("records previous and new quantity", func(t *testing.T) {
		mv, err := NewStockMovement(tenantID, productID, locationID, MovementTypeExit,
			decimal.NewFromInt(3), decimal.NewFromInt(10), decimal.NewFromInt(7),
			"Sale SAL-2026-00001 confirmed", "SAL-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, MovementTypeExit, mv.Type)
		assert.True(t, mv.PreviousQuantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, mv.NewQuantity.Equal(decimal.NewFromInt(7)))
		assert.Equal(t, "SAL-2026-00001", mv.ReferenceCode)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, locationID, MovementType("SWAP"),
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), "r", "")
		assert.Error(t, err)
	})

	t.Run("rejects missing reason", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, locationID, MovementTypeEntry,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), "", "")
		assert.Error(t, err)
	})
}
