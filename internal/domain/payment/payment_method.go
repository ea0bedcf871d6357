package payment

import (
	"fmt"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentMethod is a tenant-configured payment option. Besides naming the
// method it carries the installment policy and the credit-analysis policy
// that the sales flow enforces.
type PaymentMethod struct {
	shared.TenantAggregateRoot
	Name                   string `gorm:"not null"`
	Code                   string `gorm:"not null;index"`
	AllowInstallments      bool
	MaxInstallments        int
	RequiresCreditAnalysis bool
	MinCreditScore         int
	Active                 bool `gorm:"not null;default:true"`
}

// TableName overrides the GORM table name
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new payment method
func NewPaymentMethod(tenantID uuid.UUID, name, code string) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment method name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Payment method code is required")
	}

	return &PaymentMethod{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                code,
		MaxInstallments:     1,
		Active:              true,
	}, nil
}

// ValidateInstallments checks an installment count against the method's policy
func (m *PaymentMethod) ValidateInstallments(installments int) error {
	if installments < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	if installments > 1 && !m.AllowInstallments {
		return shared.NewDomainError("BUSINESS_RULE",
			fmt.Sprintf("Payment method %s does not allow installments", m.Name))
	}
	if m.AllowInstallments && installments > m.MaxInstallments {
		return shared.NewDomainError("BUSINESS_RULE",
			fmt.Sprintf("Payment method %s allows at most %d installments", m.Name, m.MaxInstallments))
	}
	return nil
}

// Deactivate disables the method for new sales
func (m *PaymentMethod) Deactivate() {
	m.Active = false
	m.IncrementVersion()
}

// Activate re-enables the method
func (m *PaymentMethod) Activate() {
	m.Active = true
	m.IncrementVersion()
}
