package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService exposes the inventory ledger: availability queries, inbound
// receipts and the movement log.
type StockService struct {
	stockRepo    inventory.StockRepository
	movementRepo inventory.StockMovementRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockRepository,
	movementRepo inventory.StockMovementRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// GetStock retrieves the stock record for a (product, location) pair
func (s *StockService) GetStock(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.StockByLocation, error) {
	return s.stockRepo.FindByProductAndLocation(ctx, tenantID, productID, locationID)
}

// CheckAvailable reports whether a location can fulfill the requested quantity
func (s *StockService) CheckAvailable(ctx context.Context, tenantID, productID, locationID uuid.UUID, quantity decimal.Decimal) (bool, error) {
	stock, err := s.stockRepo.FindByProductAndLocation(ctx, tenantID, productID, locationID)
	if err != nil {
		return false, err
	}
	return stock.CanFulfill(quantity), nil
}

// List retrieves stock records with pagination
func (s *StockService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.StockByLocation], error) {
	items, err := s.stockRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListMovements retrieves the movement history for a (product, location) pair
func (s *StockService) ListMovements(ctx context.Context, tenantID, productID, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	return s.movementRepo.FindByProductAndLocation(ctx, tenantID, productID, locationID, filter)
}

// ListMovementsByReference retrieves movements caused by one sale
func (s *StockService) ListMovementsByReference(ctx context.Context, tenantID uuid.UUID, referenceCode string) ([]inventory.StockMovement, error) {
	return s.movementRepo.FindByReferenceCode(ctx, tenantID, referenceCode)
}

// ReceiveStock records an inbound receipt: the quantity increase and its ENTRY
// movement happen in one transaction. The stock row is created on first
// receipt for a new (product, location) pair.
func (s *StockService) ReceiveStock(ctx context.Context, tenantID, productID, locationID uuid.UUID, quantity decimal.Decimal, reason string) (*inventory.StockByLocation, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	var stock *inventory.StockByLocation

	err := s.txScope.Execute(ctx, func(repos StockRepositories) error {
		var err error
		stock, err = repos.Stock().FindForUpdate(ctx, tenantID, productID, locationID)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
				return err
			}
			stock, err = inventory.NewStockByLocation(tenantID, productID, locationID, decimal.Zero)
			if err != nil {
				return err
			}
		}

		previous := stock.Quantity
		if err := stock.Increase(quantity); err != nil {
			return err
		}
		if err := repos.Stock().Save(ctx, stock); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(tenantID, productID, locationID,
			inventory.MovementTypeEntry, quantity, previous, stock.Quantity, reason, "")
		if err != nil {
			return err
		}
		return repos.Movements().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock received",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", productID.String()),
		zap.String("location_id", locationID.String()),
		zap.String("quantity", fmt.Sprint(quantity)))

	return stock, nil
}
