package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSaleRepository(gormDB, "SAL"), mock, mockDB
}

func TestGormSaleRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds an existing sale with its items", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		tenantID := uuid.New()

		saleRows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "customer_name", "status", "total_amount", "installments"}).
			AddRow(saleID, tenantID, "SAL-2026-00001", "ACME Ltda", "QUOTE", decimal.NewFromInt(80), 2)

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, saleID, 1).
			WillReturnRows(saleRows)

		itemRows := sqlmock.NewRows([]string{"id", "sale_id", "product_name", "quantity", "unit_price"}).
			AddRow(uuid.New(), saleID, "Widget", decimal.NewFromInt(3), decimal.NewFromInt(10))

		mock.ExpectQuery(`SELECT \* FROM "sale_items" WHERE "sale_items"."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(itemRows)

		sale, err := repo.FindByIDForTenant(context.Background(), tenantID, saleID)

		assert.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, "SAL-2026-00001", sale.Code)
		assert.Len(t, sale.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a missing sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		saleID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, saleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sale, err := repo.FindByIDForTenant(context.Background(), tenantID, saleID)

		assert.Nil(t, sale)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_GenerateCode(t *testing.T) {
	t.Run("starts at one for a fresh year", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND code LIKE \$2 ORDER BY code DESC,.* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		code, err := repo.GenerateCode(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SAL-%d-00001", time.Now().Year()), code)
	})

	t.Run("increments past the highest existing code", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		year := time.Now().Year()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code"}).
			AddRow(uuid.New(), tenantID, fmt.Sprintf("SAL-%d-00041", year))

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND code LIKE \$2 ORDER BY code DESC,.* LIMIT .*`).
			WillReturnRows(rows)

		code, err := repo.GenerateCode(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SAL-%d-00042", year), code)
	})
}

func TestGormSaleRepository_CountByStatus(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE tenant_id = \$1 AND status = \$2`).
		WithArgs(tenantID, "CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStatus(context.Background(), tenantID, "CONFIRMED")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
