package payment

import (
	"context"
	"testing"

	"github.com/gestor-erp/backend/internal/domain/payment"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*payment.PaymentMethod, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*payment.PaymentMethod, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]payment.PaymentMethod, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, method *payment.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func TestPaymentMethodService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates method with installment policy", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		repo.On("FindByCode", mock.Anything, tenantID, "BOLETO").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*payment.PaymentMethod")).Return(nil)

		method, err := svc.Create(context.Background(), tenantID, CreatePaymentMethodInput{
			Name:                   "Boleto Parcelado",
			Code:                   "BOLETO",
			AllowInstallments:      true,
			MaxInstallments:        12,
			RequiresCreditAnalysis: true,
			MinCreditScore:         600,
		})

		require.NoError(t, err)
		assert.Equal(t, "BOLETO", method.Code)
		assert.True(t, method.AllowInstallments)
		assert.Equal(t, 12, method.MaxInstallments)
		assert.True(t, method.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		existing, err := payment.NewPaymentMethod(tenantID, "Boleto", "BOLETO")
		require.NoError(t, err)
		repo.On("FindByCode", mock.Anything, tenantID, "BOLETO").Return(existing, nil)

		_, err = svc.Create(context.Background(), tenantID, CreatePaymentMethodInput{
			Name: "Boleto Novo",
			Code: "BOLETO",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates repository failures from the duplicate check", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		repo.On("FindByCode", mock.Anything, tenantID, "PIX").Return(nil, assert.AnError)

		_, err := svc.Create(context.Background(), tenantID, CreatePaymentMethodInput{
			Name: "Pix",
			Code: "PIX",
		})

		require.ErrorIs(t, err, assert.AnError)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentMethodService_Update(t *testing.T) {
	tenantID := uuid.New()

	newMethod := func(t *testing.T) *payment.PaymentMethod {
		t.Helper()
		method, err := payment.NewPaymentMethod(tenantID, "Cartao", "CARD")
		require.NoError(t, err)
		return method
	}

	t.Run("updates only provided fields", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		method := newMethod(t)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, method.ID).Return(method, nil)
		repo.On("Save", mock.Anything, method).Return(nil)

		maxInstallments := 6
		updated, err := svc.Update(context.Background(), tenantID, method.ID, UpdatePaymentMethodInput{
			MaxInstallments: &maxInstallments,
		})

		require.NoError(t, err)
		assert.Equal(t, 6, updated.MaxInstallments)
		assert.Equal(t, "Cartao", updated.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		method := newMethod(t)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, method.ID).Return(method, nil)

		empty := ""
		_, err := svc.Update(context.Background(), tenantID, method.ID, UpdatePaymentMethodInput{
			Name: &empty,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects installments below one", func(t *testing.T) {
		repo := new(MockPaymentMethodRepository)
		svc := NewPaymentMethodService(repo, zap.NewNop())

		method := newMethod(t)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, method.ID).Return(method, nil)

		zero := 0
		_, err := svc.Update(context.Background(), tenantID, method.ID, UpdatePaymentMethodInput{
			MaxInstallments: &zero,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INSTALLMENTS", domainErr.Code)
	})
}

func TestPaymentMethodService_ActivateDeactivate(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockPaymentMethodRepository)
	svc := NewPaymentMethodService(repo, zap.NewNop())

	method, err := payment.NewPaymentMethod(tenantID, "Dinheiro", "CASH")
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, method.ID).Return(method, nil)
	repo.On("Save", mock.Anything, method).Return(nil)

	deactivated, err := svc.Deactivate(context.Background(), tenantID, method.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	activated, err := svc.Activate(context.Background(), tenantID, method.ID)
	require.NoError(t, err)
	assert.True(t, activated.Active)
}
