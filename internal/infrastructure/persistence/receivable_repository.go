package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivableRepository implements ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByIDForTenant finds a receivable by ID within a tenant
func (r *GormReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	var receivable finance.AccountReceivable
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&receivable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receivable, nil
}

// FindByDocumentNumber finds all installments of one sale, ordered by number
func (r *GormReceivableRepository) FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) ([]finance.AccountReceivable, error) {
	var receivables []finance.AccountReceivable
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_number = ?", tenantID, documentNumber).
		Order("installment_number ASC").
		Find(&receivables).Error; err != nil {
		return nil, err
	}
	return receivables, nil
}

// CreateBatch inserts all installments of one schedule
func (r *GormReceivableRepository) CreateBatch(ctx context.Context, receivables []finance.AccountReceivable) error {
	if len(receivables) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&receivables).Error
}

// Save updates a single receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	return r.db.WithContext(ctx).Save(receivable).Error
}

// CancelOpenByDocumentNumber bulk-cancels every open installment of a document
// in a single update. Settled installments are left untouched.
func (r *GormReceivableRepository) CancelOpenByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&finance.AccountReceivable{}).
		Where("tenant_id = ? AND document_number = ? AND status IN ?",
			tenantID, documentNumber,
			[]finance.ReceivableStatus{finance.ReceivableStatusPending, finance.ReceivableStatusOverdue}).
		Updates(map[string]interface{}{
			"status":      finance.ReceivableStatusCanceled,
			"canceled_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormReceivableRepository implements ReceivableRepository
var _ finance.ReceivableRepository = (*GormReceivableRepository)(nil)
