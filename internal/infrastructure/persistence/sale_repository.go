package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestor-erp/backend/internal/domain/sales"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db         *gorm.DB
	codePrefix string
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB, codePrefix string) *GormSaleRepository {
	if codePrefix == "" {
		codePrefix = "SAL"
	}
	return &GormSaleRepository{db: db, codePrefix: codePrefix}
}

// FindByIDForTenant finds a sale by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByCode finds a sale by its code for a tenant
func (r *GormSaleRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForTenant finds all sales for a tenant with filtering
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// CountForTenant counts sales for a tenant with optional filters
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sales by status for a tenant
func (r *GormSaleRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status sales.SaleStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(sale).Error; err != nil {
			return err
		}
		return r.saveItems(tx, sale)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&sales.Sale{}).
			Where("id = ?", sale.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != sale.Version {
			return shared.ErrConcurrencyConflict
		}

		sale.Version++
		sale.UpdatedAt = time.Now()

		result := tx.Model(&sales.Sale{}).
			Where("id = ? AND version = ?", sale.ID, currentVersion).
			Updates(map[string]interface{}{
				"customer_id":              sale.CustomerID,
				"customer_name":            sale.CustomerName,
				"payment_method_id":        sale.PaymentMethodID,
				"installments":             sale.Installments,
				"subtotal":                 sale.Subtotal,
				"discount_amount":          sale.DiscountAmount,
				"discount_percent":         sale.DiscountPercent,
				"shipping_cost":            sale.ShippingCost,
				"other_charges":            sale.OtherCharges,
				"total_amount":             sale.TotalAmount,
				"installment_value":        sale.InstallmentValue,
				"status":                   sale.Status,
				"credit_analysis_required": sale.CreditAnalysisRequired,
				"credit_status":            sale.CreditStatus,
				"credit_score":             sale.CreditScore,
				"credit_notes":             sale.CreditNotes,
				"credit_analyzed_at":       sale.CreditAnalyzedAt,
				"confirmed_at":             sale.ConfirmedAt,
				"canceled_at":              sale.CanceledAt,
				"cancellation_reason":      sale.CancellationReason,
				"notes":                    sale.Notes,
				"version":                  sale.Version,
				"updated_at":               sale.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveItems(tx, sale)
	})
}

// DeleteForTenant deletes a sale and its items for a tenant
func (r *GormSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale sales.Sale
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("sale_id = ?", id).Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Sale{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateCode generates a unique sale code for a tenant.
// Format: SAL-YYYY-NNNNN (e.g., SAL-2026-00001)
func (r *GormSaleRepository) GenerateCode(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", r.codePrefix, year)

	var lastSale sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("tenant_id = ? AND code LIKE ?", tenantID, prefix+"%").
		Order("code DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.Code != "" {
		parts := strings.Split(lastSale.Code, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// saveItems replaces the persisted item set with the aggregate's current items
func (r *GormSaleRepository) saveItems(tx *gorm.DB, sale *sales.Sale) error {
	currentItemIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, currentItemIDs).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	}

	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		if err := tx.Save(&sale.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "payment_method_id":
			query = query.Where("payment_method_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "credit_status":
			query = query.Where("credit_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
