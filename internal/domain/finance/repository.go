package finance

import (
	"context"

	"github.com/google/uuid"
)

// ReceivableRepository defines persistence operations for receivable installments
type ReceivableRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*AccountReceivable, error)
	FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) ([]AccountReceivable, error)
	CreateBatch(ctx context.Context, receivables []AccountReceivable) error
	Save(ctx context.Context, receivable *AccountReceivable) error
	// CancelOpenByDocumentNumber bulk-cancels every PENDENTE or VENCIDO
	// installment of a document in a single update. Settled installments
	// are left untouched. Returns the number of rows affected.
	CancelOpenByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (int64, error)
}
