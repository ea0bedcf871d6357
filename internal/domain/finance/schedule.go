package finance

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// installmentCadenceDays is the fixed spacing between installment due dates.
// Payment-method specific due-date templates are deliberately not consulted
// here; the schedule always runs on a 30-day cadence from the confirm date.
const installmentCadenceDays = 30

// BuildInstallmentSchedule creates the N receivable installments for a
// confirmed sale. Amounts are allocated so the installments sum exactly to
// the sale total; any rounding remainder lands on the leading installments.
func BuildInstallmentSchedule(tenantID, customerID uuid.UUID, customerName, documentNumber string, total decimal.Decimal, installments int, baseDate time.Time) ([]AccountReceivable, error) {
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document number is required")
	}
	if installments < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	amounts, err := valueobject.NewMoneyBRL(total).Allocate(installments)
	if err != nil {
		return nil, err
	}

	schedule := make([]AccountReceivable, 0, installments)
	for i, amount := range amounts {
		number := i + 1
		schedule = append(schedule, AccountReceivable{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
			CustomerID:          customerID,
			CustomerName:        customerName,
			DocumentNumber:      documentNumber,
			InstallmentNumber:   number,
			TotalInstallments:   installments,
			OriginalAmount:      amount.Amount(),
			DueDate:             baseDate.AddDate(0, 0, installmentCadenceDays*i),
			Status:              ReceivableStatusPending,
			Description:         fmt.Sprintf("Installment %d/%d of sale %s", number, installments, documentNumber),
		})
	}

	return schedule, nil
}
