package inventory

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/inventory"
)

// StockRepositories exposes the inventory repositories bound to one
// transaction. A stock change and its movement record are written as one unit.
type StockRepositories interface {
	Stock() inventory.StockRepository
	Movements() inventory.StockMovementRepository
}

// TransactionScope executes a function within a database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos StockRepositories) error) error
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests where repositories are mocked.
type NoOpTransactionScope struct {
	StockRepo    inventory.StockRepository
	MovementRepo inventory.StockMovementRepository
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos StockRepositories) error) error {
	return fn(s)
}

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockRepository {
	return s.StockRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.MovementRepo
}
