package inventory

import (
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeEntry  MovementType = "ENTRY"  // inbound receipt
	MovementTypeExit   MovementType = "EXIT"   // sale confirmation
	MovementTypeReturn MovementType = "RETURN" // sale cancellation after confirm
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeReturn:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// StockMovement is the append-only audit record of an inventory change.
// Rows are write-once; there are no update or delete paths.
type StockMovement struct {
	shared.BaseEntity
	TenantID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Type             MovementType
	Quantity         decimal.Decimal
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	Reason           string
	ReferenceCode    string `gorm:"index"` // sale code that caused the movement
}

// NewStockMovement creates an audit record for a stock change
func NewStockMovement(tenantID, productID, locationID uuid.UUID, movementType MovementType, quantity, previousQuantity, newQuantity decimal.Decimal, reason, referenceCode string) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown stock movement type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Movement reason is required")
	}

	return &StockMovement{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		ProductID:        productID,
		LocationID:       locationID,
		Type:             movementType,
		Quantity:         quantity,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Reason:           reason,
		ReferenceCode:    referenceCode,
	}, nil
}
