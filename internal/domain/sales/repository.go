package sales

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines persistence operations for the Sale aggregate
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status SaleStatus) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	SaveWithLock(ctx context.Context, sale *Sale) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	GenerateCode(ctx context.Context, tenantID uuid.UUID) (string, error)
}
