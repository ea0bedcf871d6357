package sales

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/sales"
)

// TransactionalRepositories exposes the repositories bound to one transaction.
// Lifecycle operations mutate the sale, its stock rows and the movement log as
// a single unit, so all three repositories must share the same transaction.
type TransactionalRepositories interface {
	Sales() sales.SaleRepository
	Stock() inventory.StockRepository
	Movements() inventory.StockMovementRepository
}

// TransactionScope executes a function within a database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests where repositories are mocked.
type NoOpTransactionScope struct {
	SalesRepo    sales.SaleRepository
	StockRepo    inventory.StockRepository
	MovementRepo inventory.StockMovementRepository
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() sales.SaleRepository {
	return s.SalesRepo
}

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockRepository {
	return s.StockRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.MovementRepo
}
