package persistence

import (
	"context"

	appinv "github.com/gestor-erp/backend/internal/application/inventory"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the inventory TransactionScope using
// GORM transactions. A quantity change and its movement record commit or roll
// back together.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinv.StockRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

// gormStockRepositories provides transaction-bound repositories
type gormStockRepositories struct {
	tx *gorm.DB
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormStockRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

// Movements returns the movement repository scoped to the current transaction
func (r *gormStockRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure the scope satisfies the application interfaces
var _ appinv.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appinv.StockRepositories = (*gormStockRepositories)(nil)
