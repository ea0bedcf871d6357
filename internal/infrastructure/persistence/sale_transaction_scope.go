package persistence

import (
	"context"

	appsales "github.com/gestor-erp/backend/internal/application/sales"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormSaleTransactionScope implements the sale TransactionScope using GORM
// transactions. Confirm and cancel mutate the sale, stock rows and the
// movement log as one atomic unit through it.
type GormSaleTransactionScope struct {
	db         *gorm.DB
	codePrefix string
}

// NewGormSaleTransactionScope creates a new GormSaleTransactionScope
func NewGormSaleTransactionScope(db *gorm.DB, codePrefix string) *GormSaleTransactionScope {
	return &GormSaleTransactionScope{db: db, codePrefix: codePrefix}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSaleTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSaleRepositories{tx: tx, codePrefix: s.codePrefix})
	})
}

// gormSaleRepositories provides transaction-bound repositories
type gormSaleRepositories struct {
	tx         *gorm.DB
	codePrefix string
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormSaleRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx, r.codePrefix)
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormSaleRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

// Movements returns the movement repository scoped to the current transaction
func (r *gormSaleRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure the scope satisfies the application interfaces
var _ appsales.TransactionScope = (*GormSaleTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormSaleRepositories)(nil)
