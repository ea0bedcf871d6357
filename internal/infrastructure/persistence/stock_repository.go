package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByProductAndLocation finds the stock record for a (product, location) pair
func (r *GormStockRepository) FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.StockByLocation, error) {
	var stock inventory.StockByLocation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND location_id = ?", tenantID, productID, locationID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindForUpdate reads the stock row with SELECT ... FOR UPDATE so that
// concurrent writers on the same (product, location) serialize. Only
// meaningful when r.db is a transaction handle.
func (r *GormStockRepository) FindForUpdate(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.StockByLocation, error) {
	var stock inventory.StockByLocation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND product_id = ? AND location_id = ?", tenantID, productID, locationID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindAllForTenant finds all stock records for a tenant with filtering
func (r *GormStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockByLocation, error) {
	var result []inventory.StockByLocation
	query := r.db.WithContext(ctx).Model(&inventory.StockByLocation{}).Where("tenant_id = ?", tenantID)
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

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// CountForTenant counts stock records for a tenant
func (r *GormStockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.StockByLocation{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock record
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.StockByLocation) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

func (r *GormStockRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		}
	}
	return query
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
