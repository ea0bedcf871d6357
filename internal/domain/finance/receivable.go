package finance

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the state of a receivable installment.
// The values are the ledger's wire values and must not be translated.
type ReceivableStatus string

const (
	ReceivableStatusPending  ReceivableStatus = "PENDENTE"
	ReceivableStatusOverdue  ReceivableStatus = "VENCIDO"
	ReceivableStatusReceived ReceivableStatus = "RECEBIDO"
	ReceivableStatusCanceled ReceivableStatus = "CANCELADO"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusOverdue, ReceivableStatusReceived, ReceivableStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// IsOpen reports whether the installment still awaits payment
func (s ReceivableStatus) IsOpen() bool {
	return s == ReceivableStatusPending || s == ReceivableStatusOverdue
}

// AccountReceivable is one scheduled installment owed by a customer.
// Rows are created once at sale confirmation and only ever move to
// RECEBIDO or CANCELADO; they are never deleted.
type AccountReceivable struct {
	shared.TenantAggregateRoot
	CustomerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName      string
	DocumentNumber    string `gorm:"index"` // sale code, used for bulk cancellation
	InstallmentNumber int
	TotalInstallments int
	OriginalAmount    decimal.Decimal
	DueDate           time.Time
	Status            ReceivableStatus
	Description       string
	ReceivedAt        *time.Time
	CanceledAt        *time.Time
}

// TableName overrides the GORM table name
func (AccountReceivable) TableName() string {
	return "accounts_receivable"
}

// MarkReceived settles an open installment
func (r *AccountReceivable) MarkReceived() error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot receive installment in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReceivableStatusReceived
	r.ReceivedAt = &now
	r.UpdatedAt = now
	return nil
}

// Cancel voids an open installment. Settled installments are untouched:
// cancellation is an auditable state change, not an erasure.
func (r *AccountReceivable) Cancel() error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel installment in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReceivableStatusCanceled
	r.CanceledAt = &now
	r.UpdatedAt = now
	return nil
}

// MarkOverdue flags a pending installment past its due date
func (r *AccountReceivable) MarkOverdue(asOf time.Time) error {
	if r.Status != ReceivableStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark installment overdue in %s status", r.Status))
	}
	if !asOf.After(r.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Installment is not past its due date")
	}

	r.Status = ReceivableStatusOverdue
	r.UpdatedAt = time.Now()
	return nil
}
