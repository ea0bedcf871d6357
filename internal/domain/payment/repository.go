package payment

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentMethodRepository defines persistence operations for payment methods
type PaymentMethodRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentMethod, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*PaymentMethod, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PaymentMethod, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, method *PaymentMethod) error
}
