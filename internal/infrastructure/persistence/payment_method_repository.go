package persistence

import (
	"context"
	"errors"

	"github.com/gestor-erp/backend/internal/domain/payment"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByIDForTenant finds a payment method by ID within a tenant
func (r *GormPaymentMethodRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*payment.PaymentMethod, error) {
	var method payment.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByCode finds a payment method by its code for a tenant
func (r *GormPaymentMethodRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*payment.PaymentMethod, error) {
	var method payment.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindAllForTenant finds all payment methods for a tenant
func (r *GormPaymentMethodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]payment.PaymentMethod, error) {
	var methods []payment.PaymentMethod
	query := r.db.WithContext(ctx).Model(&payment.PaymentMethod{}).Where("tenant_id = ?", tenantID)

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// CountForTenant counts payment methods for a tenant
func (r *GormPaymentMethodRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&payment.PaymentMethod{}).Where("tenant_id = ?", tenantID)
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *payment.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Ensure GormPaymentMethodRepository implements PaymentMethodRepository
var _ payment.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
