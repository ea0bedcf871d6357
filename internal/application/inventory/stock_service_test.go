package inventory

import (
	"context"
	"testing"

	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.StockByLocation, error) {
	args := m.Called(ctx, tenantID, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockByLocation), args.Error(1)
}

func (m *MockStockRepository) FindForUpdate(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.StockByLocation, error) {
	args := m.Called(ctx, tenantID, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockByLocation), args.Error(1)
}

func (m *MockStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockByLocation, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockByLocation), args.Error(1)
}

func (m *MockStockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, stock *inventory.StockByLocation) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, productID, locationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReferenceCode(ctx context.Context, tenantID uuid.UUID, referenceCode string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func newTestStockService() (*StockService, *MockStockRepository, *MockStockMovementRepository) {
	stockRepo := new(MockStockRepository)
	movementRepo := new(MockStockMovementRepository)
	scope := &NoOpTransactionScope{StockRepo: stockRepo, MovementRepo: movementRepo}
	return NewStockService(stockRepo, movementRepo, scope, zap.NewNop()), stockRepo, movementRepo
}

func TestStockService_CheckAvailable(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()
	locationID := uuid.New()

	svc, stockRepo, _ := newTestStockService()
	stock, err := inventory.NewStockByLocation(tenantID, productID, locationID, decimal.NewFromInt(5))
	require.NoError(t, err)

	stockRepo.On("FindByProductAndLocation", ctx, tenantID, productID, locationID).Return(stock, nil)

	ok, err := svc.CheckAvailable(ctx, tenantID, productID, locationID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailable(ctx, tenantID, productID, locationID, decimal.NewFromInt(6))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStockService_ReceiveStock(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()
	locationID := uuid.New()

	t.Run("increases an existing stock row and logs an entry", func(t *testing.T) {
		svc, stockRepo, movementRepo := newTestStockService()
		stock, err := inventory.NewStockByLocation(tenantID, productID, locationID, decimal.NewFromInt(3))
		require.NoError(t, err)

		stockRepo.On("FindForUpdate", ctx, tenantID, productID, locationID).Return(stock, nil)
		stockRepo.On("Save", ctx, stock).Return(nil)
		movementRepo.On("Create", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		updated, err := svc.ReceiveStock(ctx, tenantID, productID, locationID, decimal.NewFromInt(7), "purchase order 42")
		require.NoError(t, err)
		assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(10)))

		movementRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
			return mv.Type == inventory.MovementTypeEntry &&
				mv.PreviousQuantity.Equal(decimal.NewFromInt(3)) &&
				mv.NewQuantity.Equal(decimal.NewFromInt(10))
		}))
	})

	t.Run("creates the stock row on first receipt", func(t *testing.T) {
		svc, stockRepo, movementRepo := newTestStockService()

		stockRepo.On("FindForUpdate", ctx, tenantID, productID, locationID).Return(nil, shared.ErrNotFound)
		stockRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockByLocation")).Return(nil)
		movementRepo.On("Create", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		updated, err := svc.ReceiveStock(ctx, tenantID, productID, locationID, decimal.NewFromInt(4), "initial load")
		require.NoError(t, err)
		assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		svc, stockRepo, _ := newTestStockService()

		_, err := svc.ReceiveStock(ctx, tenantID, productID, locationID, decimal.Zero, "noop")
		assert.Error(t, err)
		stockRepo.AssertNotCalled(t, "FindForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
