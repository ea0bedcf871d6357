package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockReceivableRepository creates a GormReceivableRepository with a mocked SQL connection
func newMockReceivableRepository(t *testing.T) (*GormReceivableRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormReceivableRepository(gormDB), mock, mockDB
}

func TestGormReceivableRepository_FindByDocumentNumber(t *testing.T) {
	t.Run("returns installments ordered by number", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivableRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "document_number", "installment_number", "total_installments", "original_amount", "status"}).
			AddRow(uuid.New(), tenantID, "SAL-2026-00001", 1, 2, decimal.NewFromInt(40), "PENDENTE").
			AddRow(uuid.New(), tenantID, "SAL-2026-00001", 2, 2, decimal.NewFromInt(40), "PENDENTE")

		mock.ExpectQuery(`SELECT \* FROM "accounts_receivable" WHERE tenant_id = \$1 AND document_number = \$2 ORDER BY installment_number ASC`).
			WithArgs(tenantID, "SAL-2026-00001").
			WillReturnRows(rows)

		receivables, err := repo.FindByDocumentNumber(context.Background(), tenantID, "SAL-2026-00001")

		assert.NoError(t, err)
		assert.Len(t, receivables, 2)
		assert.Equal(t, 1, receivables[0].InstallmentNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReceivableRepository_CancelOpenByDocumentNumber(t *testing.T) {
	t.Run("cancels only open installments", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivableRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "accounts_receivable" SET .* WHERE tenant_id = \$\d+ AND document_number = \$\d+ AND status IN \(\$\d+,\$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := repo.CancelOpenByDocumentNumber(context.Background(), tenantID, "SAL-2026-00001")

		assert.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when nothing is open", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivableRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "accounts_receivable" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.CancelOpenByDocumentNumber(context.Background(), tenantID, "SAL-2026-00099")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestGormReceivableRepository_CreateBatch(t *testing.T) {
	t.Run("no-op for an empty batch", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivableRepository(t)
		defer mockDB.Close()

		err := repo.CreateBatch(context.Background(), []finance.AccountReceivable{})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
