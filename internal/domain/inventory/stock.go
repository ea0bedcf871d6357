package inventory

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockByLocation tracks the current quantity of a product at a stock location.
// Quantity is mutated only through Decrease and Increase so it can never go
// negative as a result of a sale confirmation.
type StockByLocation struct {
	shared.TenantAggregateRoot
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index:idx_stock_product_location,unique"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_stock_product_location,unique"`
	Quantity   decimal.Decimal
}

// TableName overrides the GORM table name
func (StockByLocation) TableName() string {
	return "stock_by_location"
}

// NewStockByLocation creates a stock record for a (product, location) pair
func NewStockByLocation(tenantID, productID, locationID uuid.UUID, quantity decimal.Decimal) (*StockByLocation, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}

	return &StockByLocation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		LocationID:          locationID,
		Quantity:            quantity,
	}, nil
}

// CanFulfill reports whether the location holds at least the requested quantity
func (s *StockByLocation) CanFulfill(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}

// Decrease removes quantity from the location.
// Rejected outright when the available quantity is insufficient; there is no
// partial fulfillment.
func (s *StockByLocation) Decrease(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !s.CanFulfill(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Requested %s but only %s available", quantity, s.Quantity))
	}

	s.Quantity = s.Quantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	return nil
}

// Increase adds quantity back to the location
func (s *StockByLocation) Increase(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	s.Quantity = s.Quantity.Add(quantity)
	s.UpdatedAt = time.Now()
	return nil
}
