package sales

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem represents a line item in a sale.
// Items are frozen once the sale leaves the editable statuses.
type SaleItem struct {
	ID              uuid.UUID
	SaleID          uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	StockLocationID *uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Discount        decimal.Decimal
	Subtotal        decimal.Decimal // Quantity * UnitPrice
	Total           decimal.Decimal // Subtotal - Discount
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSaleItem creates a new sale item with derived line totals
func NewSaleItem(saleID, productID uuid.UUID, productName string, stockLocationID *uuid.UUID, quantity, unitPrice, discount decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot be negative")
	}

	now := time.Now()
	subtotal := quantity.Mul(unitPrice)
	if discount.GreaterThan(subtotal) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot exceed the line subtotal")
	}

	return &SaleItem{
		ID:              uuid.New(),
		SaleID:          saleID,
		ProductID:       productID,
		ProductName:     productName,
		StockLocationID: stockLocationID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		Discount:        discount,
		Subtotal:        subtotal,
		Total:           subtotal.Sub(discount),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Sale is the aggregate root driving a customer order through its lifecycle
type Sale struct {
	shared.TenantAggregateRoot
	Code            string
	CustomerID      uuid.UUID
	CustomerName    string
	PaymentMethodID uuid.UUID
	Installments    int
	Items           []SaleItem `gorm:"foreignKey:SaleID"`

	Subtotal         decimal.Decimal
	DiscountAmount   decimal.Decimal
	DiscountPercent  decimal.Decimal
	ShippingCost     decimal.Decimal
	OtherCharges     decimal.Decimal
	TotalAmount      decimal.Decimal
	InstallmentValue decimal.Decimal

	Status SaleStatus

	CreditAnalysisRequired bool
	CreditStatus           CreditStatus
	CreditScore            *int
	CreditNotes            string
	CreditAnalyzedAt       *time.Time

	QuoteDate          time.Time
	ConfirmedAt        *time.Time
	CanceledAt         *time.Time
	CancellationReason string
	Notes              string
}

// NewSale creates a new sale in an initial status
func NewSale(tenantID uuid.UUID, code string, customerID uuid.UUID, customerName string, paymentMethodID uuid.UUID, installments int, initialStatus SaleStatus) (*Sale, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Sale code cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method ID cannot be empty")
	}
	if installments < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	if initialStatus == "" {
		initialStatus = SaleStatusQuote
	}
	if !initialStatus.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Sale cannot be created in %s status", initialStatus))
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		CustomerID:          customerID,
		CustomerName:        customerName,
		PaymentMethodID:     paymentMethodID,
		Installments:        installments,
		Items:               make([]SaleItem, 0),
		Subtotal:            decimal.Zero,
		DiscountAmount:      decimal.Zero,
		DiscountPercent:     decimal.Zero,
		ShippingCost:        decimal.Zero,
		OtherCharges:        decimal.Zero,
		TotalAmount:         decimal.Zero,
		InstallmentValue:    decimal.Zero,
		Status:              initialStatus,
		QuoteDate:           time.Now(),
	}, nil
}

// ReplaceItems swaps the full item list.
// Only allowed while the sale is editable.
func (s *Sale) ReplaceItems(items []SaleItem) error {
	if !s.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change items of a sale in %s status", s.Status))
	}
	for i := range items {
		items[i].SaleID = s.ID
	}
	s.Items = items
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyTotals stores the output of the pricing calculator on the sale
func (s *Sale) ApplyTotals(t Totals) {
	s.Subtotal = t.Subtotal
	s.DiscountAmount = t.DiscountAmount
	s.DiscountPercent = t.DiscountPercent
	s.ShippingCost = t.ShippingCost
	s.OtherCharges = t.OtherCharges
	s.TotalAmount = t.TotalAmount
	s.InstallmentValue = t.InstallmentValue
	s.UpdatedAt = time.Now()
}

// ChangeStatus performs a generic table-driven transition.
// Side-effect transitions (CONFIRMED, CANCELED) have dedicated methods.
func (s *Sale) ChangeStatus(target SaleStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Unknown target status %s", target))
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition sale from %s to %s", s.Status, target))
	}

	s.Status = target
	s.UpdatedAt = time.Now()
	return nil
}

// Confirm transitions the sale to CONFIRMED.
// The transition table must allow it and a required credit analysis must be
// APPROVED. Stock checks are the caller's responsibility and must run in the
// same transaction.
func (s *Sale) Confirm() error {
	if !s.Status.CanTransitionTo(SaleStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm a sale without items")
	}
	if s.CreditAnalysisRequired && s.CreditStatus != CreditStatusApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm sale while credit analysis is %s", s.CreditStatus))
	}

	now := time.Now()
	s.Status = SaleStatusConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now
	return nil
}

// Cancel cancels the sale with an auditable reason.
// Illegal only from CANCELED and COMPLETED. Stock restoration for sales that
// hold stock is the caller's responsibility, in the same transaction.
func (s *Sale) Cancel(reason string) error {
	if s.Status == SaleStatusCanceled || s.Status == SaleStatusCompleted {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}

	now := time.Now()
	s.Status = SaleStatusCanceled
	s.CanceledAt = &now
	s.CancellationReason = reason
	s.UpdatedAt = now
	return nil
}

// RequireCreditAnalysis flags the sale as pending a credit decision
func (s *Sale) RequireCreditAnalysis() {
	s.CreditAnalysisRequired = true
	s.CreditStatus = CreditStatusPending
	s.UpdatedAt = time.Now()
}

// ApproveCredit records an approved credit decision.
// Only legal while the analysis is PENDING, and the score must meet the
// payment method's minimum. Approval advances PENDING_APPROVAL to APPROVED.
func (s *Sale) ApproveCredit(score, minScore int, notes string) error {
	if s.CreditStatus != CreditStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Credit analysis is %s, only pending analyses can be decided", s.CreditStatus))
	}
	if score < minScore {
		return shared.NewDomainError("BUSINESS_RULE",
			fmt.Sprintf("Credit score %d is below the required minimum %d", score, minScore))
	}

	now := time.Now()
	s.CreditStatus = CreditStatusApproved
	s.CreditScore = &score
	s.CreditNotes = notes
	s.CreditAnalyzedAt = &now
	if s.Status == SaleStatusPendingApproval {
		s.Status = SaleStatusApproved
	}
	s.UpdatedAt = now
	return nil
}

// RejectCredit records a rejected credit decision.
// Rejection forces the sale to REJECTED regardless of its prior status.
func (s *Sale) RejectCredit(notes string) error {
	if s.CreditStatus != CreditStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Credit analysis is %s, only pending analyses can be decided", s.CreditStatus))
	}

	now := time.Now()
	s.CreditStatus = CreditStatusRejected
	s.CreditNotes = notes
	s.CreditAnalyzedAt = &now
	s.Status = SaleStatusRejected
	s.UpdatedAt = now
	return nil
}

// IsEditable returns true while fields and items may still change
func (s *Sale) IsEditable() bool {
	return s.Status.IsEditable()
}

// IsTerminal returns true when the sale reached a terminal status
func (s *Sale) IsTerminal() bool {
	return s.Status.IsTerminal()
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}
