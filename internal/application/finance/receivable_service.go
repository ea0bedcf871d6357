package finance

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceivableService exposes the receivables ledger: installment queries,
// settlement and overdue flagging. Installments are created by the sale
// confirmation flow, not here.
type ReceivableService struct {
	receivableRepo finance.ReceivableRepository
	logger         *zap.Logger
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo finance.ReceivableRepository, logger *zap.Logger) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		logger:         logger,
	}
}

// GetByID retrieves one installment
func (s *ReceivableService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	return s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListByDocumentNumber retrieves all installments of one sale
func (s *ReceivableService) ListByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) ([]finance.AccountReceivable, error) {
	return s.receivableRepo.FindByDocumentNumber(ctx, tenantID, documentNumber)
}

// MarkReceived settles an open installment
func (s *ReceivableService) MarkReceived(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := receivable.MarkReceived(); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}

	s.logger.Info("receivable settled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("document_number", receivable.DocumentNumber),
		zap.Int("installment", receivable.InstallmentNumber))

	return receivable, nil
}

// MarkOverdue flags a pending installment past its due date
func (s *ReceivableService) MarkOverdue(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := receivable.MarkOverdue(time.Now()); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}
