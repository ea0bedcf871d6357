package finance

import (
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReceivable(status ReceivableStatus) *AccountReceivable {
	return &AccountReceivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(uuid.New()),
		CustomerID:          uuid.New(),
		CustomerName:        "Test Customer",
		DocumentNumber:      "SAL-2026-00001",
		InstallmentNumber:   1,
		TotalInstallments:   2,
		OriginalAmount:      decimal.NewFromInt(40),
		DueDate:             time.Now().AddDate(0, 0, 30),
		Status:              status,
	}
}

func TestReceivableStatus_IsOpen(t *testing.T) {
	assert.True(t, ReceivableStatusPending.IsOpen())
	assert.True(t, ReceivableStatusOverdue.IsOpen())
	assert.False(t, ReceivableStatusReceived.IsOpen())
	assert.False(t, ReceivableStatusCanceled.IsOpen())
}

func TestAccountReceivable_MarkReceived(t *testing.T) {
	t.Run("settles pending installment", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusPending)
		require.NoError(t, r.MarkReceived())
		assert.Equal(t, ReceivableStatusReceived, r.Status)
		assert.NotNil(t, r.ReceivedAt)
	})

	t.Run("settles overdue installment", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusOverdue)
		assert.NoError(t, r.MarkReceived())
	})

	t.Run("rejects settled installment", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusReceived)
		assert.Error(t, r.MarkReceived())
	})

	t.Run("rejects canceled installment", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusCanceled)
		assert.Error(t, r.MarkReceived())
	})
}

func TestAccountReceivable_Cancel(t *testing.T) {
	t.Run("cancels open installments", func(t *testing.T) {
		for _, status := range []ReceivableStatus{ReceivableStatusPending, ReceivableStatusOverdue} {
			r := newTestReceivable(status)
			require.NoError(t, r.Cancel())
			assert.Equal(t, ReceivableStatusCanceled, r.Status)
			assert.NotNil(t, r.CanceledAt)
		}
	})

	t.Run("received installments are untouched", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusReceived)
		assert.Error(t, r.Cancel())
		assert.Equal(t, ReceivableStatusReceived, r.Status)
	})
}

func TestAccountReceivable_MarkOverdue(t *testing.T) {
	t.Run("flags pending installment past due date", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusPending)
		r.DueDate = time.Now().AddDate(0, 0, -1)

		require.NoError(t, r.MarkOverdue(time.Now()))
		assert.Equal(t, ReceivableStatusOverdue, r.Status)
	})

	t.Run("rejects installment not yet due", func(t *testing.T) {
		r := newTestReceivable(ReceivableStatusPending)
		assert.Error(t, r.MarkOverdue(time.Now()))
	})
}
