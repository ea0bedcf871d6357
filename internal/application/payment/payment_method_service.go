package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestor-erp/backend/internal/domain/payment"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePaymentMethodInput carries the fields for creating a payment method
type CreatePaymentMethodInput struct {
	Name                   string
	Code                   string
	AllowInstallments      bool
	MaxInstallments        int
	RequiresCreditAnalysis bool
	MinCreditScore         int
}

// UpdatePaymentMethodInput carries the mutable policy fields.
// Nil pointers mean "leave unchanged".
type UpdatePaymentMethodInput struct {
	Name                   *string
	AllowInstallments      *bool
	MaxInstallments        *int
	RequiresCreditAnalysis *bool
	MinCreditScore         *int
}

// PaymentMethodService manages the tenant's payment method catalog
type PaymentMethodService struct {
	methodRepo payment.PaymentMethodRepository
	logger     *zap.Logger
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methodRepo payment.PaymentMethodRepository, logger *zap.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		methodRepo: methodRepo,
		logger:     logger,
	}
}

// Create registers a new payment method. Codes are unique per tenant.
func (s *PaymentMethodService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePaymentMethodInput) (*payment.PaymentMethod, error) {
	existing, err := s.methodRepo.FindByCode(ctx, tenantID, input.Code)
	if err != nil {
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
			return nil, err
		}
	} else if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Payment method with code %s already exists", input.Code))
	}

	method, err := payment.NewPaymentMethod(tenantID, input.Name, input.Code)
	if err != nil {
		return nil, err
	}
	method.AllowInstallments = input.AllowInstallments
	if input.MaxInstallments > 0 {
		method.MaxInstallments = input.MaxInstallments
	}
	method.RequiresCreditAnalysis = input.RequiresCreditAnalysis
	method.MinCreditScore = input.MinCreditScore

	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}

	s.logger.Info("payment method created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("code", method.Code))

	return method, nil
}

// Update mutates a payment method's policy fields
func (s *PaymentMethodService) Update(ctx context.Context, tenantID, methodID uuid.UUID, input UpdatePaymentMethodInput) (*payment.PaymentMethod, error) {
	method, err := s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Payment method name is required")
		}
		method.Name = *input.Name
	}
	if input.AllowInstallments != nil {
		method.AllowInstallments = *input.AllowInstallments
	}
	if input.MaxInstallments != nil {
		if *input.MaxInstallments < 1 {
			return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Max installments must be at least 1")
		}
		method.MaxInstallments = *input.MaxInstallments
	}
	if input.RequiresCreditAnalysis != nil {
		method.RequiresCreditAnalysis = *input.RequiresCreditAnalysis
	}
	if input.MinCreditScore != nil {
		if *input.MinCreditScore < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Minimum credit score cannot be negative")
		}
		method.MinCreditScore = *input.MinCreditScore
	}

	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// GetByID retrieves one payment method
func (s *PaymentMethodService) GetByID(ctx context.Context, tenantID, methodID uuid.UUID) (*payment.PaymentMethod, error) {
	return s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID)
}

// List retrieves payment methods with pagination
func (s *PaymentMethodService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[payment.PaymentMethod], error) {
	items, err := s.methodRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.methodRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Activate re-enables a payment method for new sales
func (s *PaymentMethodService) Activate(ctx context.Context, tenantID, methodID uuid.UUID) (*payment.PaymentMethod, error) {
	method, err := s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID)
	if err != nil {
		return nil, err
	}
	method.Activate()
	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// Deactivate disables a payment method for new sales.
// Existing sales keep referencing it.
func (s *PaymentMethodService) Deactivate(ctx context.Context, tenantID, methodID uuid.UUID) (*payment.PaymentMethod, error) {
	method, err := s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID)
	if err != nil {
		return nil, err
	}
	method.Deactivate()
	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}
