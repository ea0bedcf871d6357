package inventory

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository defines persistence operations for StockByLocation
type StockRepository interface {
	FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*StockByLocation, error)
	// FindForUpdate reads the stock row with a row-level lock so that
	// concurrent confirmations on the same (product, location) serialize.
	// Only meaningful inside a transaction.
	FindForUpdate(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*StockByLocation, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockByLocation, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, stock *StockByLocation) error
}

// StockMovementRepository defines persistence operations for the movement log.
// The log is append-only: no update or delete methods exist.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindByReferenceCode(ctx context.Context, tenantID uuid.UUID, referenceCode string) ([]StockMovement, error)
}
