package sales

import (
	"github.com/gestor-erp/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemInput is one line item of a create or update request
type SaleItemInput struct {
	ProductID       uuid.UUID
	ProductName     string
	StockLocationID *uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Discount        decimal.Decimal
}

// CreateSaleInput carries the fields for creating a sale
type CreateSaleInput struct {
	CustomerID      uuid.UUID
	CustomerName    string
	PaymentMethodID uuid.UUID
	Installments    int
	InitialStatus   sales.SaleStatus
	Items           []SaleItemInput
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	ShippingCost    decimal.Decimal
	OtherCharges    decimal.Decimal
	Notes           string
}

// UpdateSaleInput carries the fields for updating an editable sale.
// Nil pointers mean "leave unchanged"; a nil Items slice means the stored
// items and subtotal stay authoritative.
type UpdateSaleInput struct {
	Items           []SaleItemInput
	PaymentMethodID *uuid.UUID
	Installments    *int
	DiscountAmount  *decimal.Decimal
	DiscountPercent *decimal.Decimal
	ShippingCost    *decimal.Decimal
	OtherCharges    *decimal.Decimal
	Notes           *string
}

// ConfirmResult is the outcome of a sale confirmation.
// LedgerWarning is set when the sale confirmed but receivable creation
// failed; the confirmation itself is never rolled back for that.
type ConfirmResult struct {
	Sale          *sales.Sale
	LedgerWarning string
}

// CancelResult is the outcome of a sale cancellation
type CancelResult struct {
	Sale                *sales.Sale
	CanceledReceivables int64
	LedgerWarning       string
}

// StatusCount is one row of the status summary
type StatusCount struct {
	Status sales.SaleStatus `json:"status"`
	Count  int64            `json:"count"`
}
