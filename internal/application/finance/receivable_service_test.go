package finance

import (
	"context"
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReceivableRepository is a mock implementation of finance.ReceivableRepository
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, tenantID, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) CreateBatch(ctx context.Context, receivables []finance.AccountReceivable) error {
	args := m.Called(ctx, receivables)
	return args.Error(0)
}

func (m *MockReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) CancelOpenByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (int64, error) {
	args := m.Called(ctx, tenantID, documentNumber)
	return args.Get(0).(int64), args.Error(1)
}

func newReceivable(tenantID uuid.UUID, status finance.ReceivableStatus, dueDate time.Time) *finance.AccountReceivable {
	return &finance.AccountReceivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          uuid.New(),
		CustomerName:        "ACME Ltda",
		DocumentNumber:      "SAL-2026-00001",
		InstallmentNumber:   1,
		TotalInstallments:   2,
		OriginalAmount:      decimal.NewFromInt(40),
		DueDate:             dueDate,
		Status:              status,
	}
}

func TestReceivableService_MarkReceived(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("settles a pending installment", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		svc := NewReceivableService(repo, zap.NewNop())
		r := newReceivable(tenantID, finance.ReceivableStatusPending, time.Now().AddDate(0, 0, 30))

		repo.On("FindByIDForTenant", ctx, tenantID, r.ID).Return(r, nil)
		repo.On("Save", ctx, r).Return(nil)

		updated, err := svc.MarkReceived(ctx, tenantID, r.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.ReceivableStatusReceived, updated.Status)
	})

	t.Run("rejects a canceled installment", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		svc := NewReceivableService(repo, zap.NewNop())
		r := newReceivable(tenantID, finance.ReceivableStatusCanceled, time.Now())

		repo.On("FindByIDForTenant", ctx, tenantID, r.ID).Return(r, nil)

		_, err := svc.MarkReceived(ctx, tenantID, r.ID)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestReceivableService_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("flags an installment past its due date", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		svc := NewReceivableService(repo, zap.NewNop())
		r := newReceivable(tenantID, finance.ReceivableStatusPending, time.Now().AddDate(0, 0, -5))

		repo.On("FindByIDForTenant", ctx, tenantID, r.ID).Return(r, nil)
		repo.On("Save", ctx, r).Return(nil)

		updated, err := svc.MarkOverdue(ctx, tenantID, r.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.ReceivableStatusOverdue, updated.Status)
	})

	t.Run("rejects an installment not yet due", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		svc := NewReceivableService(repo, zap.NewNop())
		r := newReceivable(tenantID, finance.ReceivableStatusPending, time.Now().AddDate(0, 0, 10))

		repo.On("FindByIDForTenant", ctx, tenantID, r.ID).Return(r, nil)

		_, err := svc.MarkOverdue(ctx, tenantID, r.ID)
		assert.Error(t, err)
	})
}

func TestReceivableService_ListByDocumentNumber(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockReceivableRepository)
	svc := NewReceivableService(repo, zap.NewNop())
	rows := []finance.AccountReceivable{
		*newReceivable(tenantID, finance.ReceivableStatusPending, time.Now()),
		*newReceivable(tenantID, finance.ReceivableStatusPending, time.Now().AddDate(0, 0, 30)),
	}

	repo.On("FindByDocumentNumber", ctx, tenantID, "SAL-2026-00001").Return(rows, nil)

	got, err := svc.ListByDocumentNumber(ctx, tenantID, "SAL-2026-00001")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
