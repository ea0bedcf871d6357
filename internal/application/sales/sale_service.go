package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/payment"
	"github.com/gestor-erp/backend/internal/domain/sales"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService orchestrates the sale lifecycle: creation and editing while the
// sale is a quote, the credit sub-workflow, and the side-effectful confirm and
// cancel transitions that touch inventory and the receivables ledger.
type SaleService struct {
	saleRepo       sales.SaleRepository
	paymentRepo    payment.PaymentMethodRepository
	stockRepo      inventory.StockRepository
	receivableRepo finance.ReceivableRepository
	txScope        TransactionScope
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	paymentRepo payment.PaymentMethodRepository,
	stockRepo inventory.StockRepository,
	receivableRepo finance.ReceivableRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		stockRepo:      stockRepo,
		receivableRepo: receivableRepo,
		txScope:        txScope,
		logger:         logger,
	}
}

// Create creates a new sale in QUOTE or another editable initial status.
// Totals are computed from the items, the payment method's installment policy
// is enforced, and every item with a stock location gets an availability check
// before the sale is persisted.
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSaleInput) (*sales.Sale, error) {
	method, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if !method.Active {
		return nil, shared.NewDomainError("BUSINESS_RULE",
			fmt.Sprintf("Payment method %s is inactive", method.Name))
	}
	if err := method.ValidateInstallments(input.Installments); err != nil {
		return nil, err
	}

	code, err := s.saleRepo.GenerateCode(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(tenantID, code, input.CustomerID, input.CustomerName,
		input.PaymentMethodID, input.Installments, input.InitialStatus)
	if err != nil {
		return nil, err
	}
	sale.Notes = input.Notes

	items, err := s.buildItems(sale.ID, input.Items)
	if err != nil {
		return nil, err
	}
	if err := sale.ReplaceItems(items); err != nil {
		return nil, err
	}

	totals, err := sales.ComputeTotals(sale.Items, input.DiscountAmount, input.DiscountPercent,
		input.ShippingCost, input.OtherCharges, input.Installments)
	if err != nil {
		return nil, err
	}
	sale.ApplyTotals(totals)

	if err := s.checkAvailability(ctx, tenantID, sale.Items); err != nil {
		return nil, err
	}

	if method.RequiresCreditAnalysis {
		sale.RequireCreditAnalysis()
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("code", sale.Code),
		zap.String("status", sale.Status.String()))

	return sale, nil
}

// Update mutates an editable sale. When items are resent, totals are
// recomputed from them; otherwise the stored subtotal stays authoritative and
// only the supplied discount, shipping, charge and installment values change.
func (s *SaleService) Update(ctx context.Context, tenantID, saleID uuid.UUID, input UpdateSaleInput) (*sales.Sale, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if !sale.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot update a sale in %s status", sale.Status))
	}

	if input.PaymentMethodID != nil {
		sale.PaymentMethodID = *input.PaymentMethodID
	}
	if input.Installments != nil {
		sale.Installments = *input.Installments
	}

	method, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, sale.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if err := method.ValidateInstallments(sale.Installments); err != nil {
		return nil, err
	}

	discountAmount := sale.DiscountAmount
	if input.DiscountAmount != nil {
		discountAmount = *input.DiscountAmount
	}
	discountPercent := sale.DiscountPercent
	if input.DiscountPercent != nil {
		discountPercent = *input.DiscountPercent
	}
	shippingCost := sale.ShippingCost
	if input.ShippingCost != nil {
		shippingCost = *input.ShippingCost
	}
	otherCharges := sale.OtherCharges
	if input.OtherCharges != nil {
		otherCharges = *input.OtherCharges
	}
	if input.Notes != nil {
		sale.Notes = *input.Notes
	}

	var totals sales.Totals
	if input.Items != nil {
		items, err := s.buildItems(sale.ID, input.Items)
		if err != nil {
			return nil, err
		}
		if err := sale.ReplaceItems(items); err != nil {
			return nil, err
		}
		totals, err = sales.ComputeTotals(sale.Items, discountAmount, discountPercent,
			shippingCost, otherCharges, sale.Installments)
		if err != nil {
			return nil, err
		}
		if err := s.checkAvailability(ctx, tenantID, sale.Items); err != nil {
			return nil, err
		}
	} else {
		totals, err = sales.ComputeTotalsFromSubtotal(sale.Subtotal, discountAmount, discountPercent,
			shippingCost, otherCharges, sale.Installments)
		if err != nil {
			return nil, err
		}
	}
	sale.ApplyTotals(totals)

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetByID retrieves a sale by its id
func (s *SaleService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*sales.Sale, error) {
	return s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
}

// GetByCode retrieves a sale by its code
func (s *SaleService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*sales.Sale, error) {
	return s.saleRepo.FindByCode(ctx, tenantID, code)
}

// List retrieves sales with pagination and filtering
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Sale], error) {
	items, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// StatusSummary counts sales per lifecycle status
func (s *SaleService) StatusSummary(ctx context.Context, tenantID uuid.UUID) ([]StatusCount, error) {
	summary := make([]StatusCount, 0, len(sales.AllStatuses()))
	for _, status := range sales.AllStatuses() {
		count, err := s.saleRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return nil, err
		}
		summary = append(summary, StatusCount{Status: status, Count: count})
	}
	return summary, nil
}

// Confirm confirms the sale: validates the transition and the credit gate,
// decrements stock for every item with a stock location and appends the EXIT
// movements, all in one transaction. Receivable installments are created after
// the commit; a failure there is logged and reported as a warning, never
// rolled back.
func (s *SaleService) Confirm(ctx context.Context, tenantID, saleID uuid.UUID) (*ConfirmResult, error) {
	var sale *sales.Sale

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}

		if err := sale.Confirm(); err != nil {
			return err
		}

		for _, item := range sale.Items {
			if item.StockLocationID == nil {
				continue
			}
			if err := s.moveStock(ctx, repos, tenantID, item.ProductID, *item.StockLocationID,
				item.Quantity, inventory.MovementTypeExit,
				fmt.Sprintf("Sale %s confirmed", sale.Code), sale.Code); err != nil {
				return err
			}
		}

		return repos.Sales().SaveWithLock(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{Sale: sale}

	schedule, err := finance.BuildInstallmentSchedule(tenantID, sale.CustomerID, sale.CustomerName,
		sale.Code, sale.TotalAmount, sale.Installments, time.Now())
	if err == nil {
		err = s.receivableRepo.CreateBatch(ctx, schedule)
	}
	if err != nil {
		result.LedgerWarning = fmt.Sprintf("sale confirmed but receivables were not created: %v", err)
		s.logger.Warn("receivable creation failed after confirmation",
			zap.String("tenant_id", tenantID.String()),
			zap.String("sale_code", sale.Code),
			zap.Error(err))
	}

	s.logger.Info("sale confirmed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_code", sale.Code),
		zap.Int("installments", sale.Installments))

	return result, nil
}

// Cancel cancels the sale with a reason. When the sale held stock, RETURN
// movements restore the decremented quantities in the same transaction. Open
// receivables tied to the sale code are bulk-canceled after the commit,
// best-effort.
func (s *SaleService) Cancel(ctx context.Context, tenantID, saleID uuid.UUID, reason string) (*CancelResult, error) {
	var sale *sales.Sale
	var restoreStock bool

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}

		restoreStock = sale.Status.HoldsStock()
		if err := sale.Cancel(reason); err != nil {
			return err
		}

		if restoreStock {
			for _, item := range sale.Items {
				if item.StockLocationID == nil {
					continue
				}
				if err := s.moveStock(ctx, repos, tenantID, item.ProductID, *item.StockLocationID,
					item.Quantity, inventory.MovementTypeReturn,
					fmt.Sprintf("Sale %s canceled: %s", sale.Code, reason), sale.Code); err != nil {
					return err
				}
			}
		}

		return repos.Sales().SaveWithLock(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	result := &CancelResult{Sale: sale}

	canceled, err := s.receivableRepo.CancelOpenByDocumentNumber(ctx, tenantID, sale.Code)
	if err != nil {
		result.LedgerWarning = fmt.Sprintf("sale canceled but open receivables were not canceled: %v", err)
		s.logger.Warn("receivable cancellation failed after sale cancel",
			zap.String("tenant_id", tenantID.String()),
			zap.String("sale_code", sale.Code),
			zap.Error(err))
	} else {
		result.CanceledReceivables = canceled
	}

	s.logger.Info("sale canceled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_code", sale.Code),
		zap.Bool("stock_restored", restoreStock),
		zap.Int64("receivables_canceled", result.CanceledReceivables))

	return result, nil
}

// ChangeStatus performs a generic table-driven transition. The side-effectful
// targets have dedicated operations and are rejected here.
func (s *SaleService) ChangeStatus(ctx context.Context, tenantID, saleID uuid.UUID, target sales.SaleStatus) (*sales.Sale, error) {
	if target == sales.SaleStatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", "Use the confirm operation to confirm a sale")
	}
	if target == sales.SaleStatusCanceled {
		return nil, shared.NewDomainError("INVALID_STATE", "Use the cancel operation to cancel a sale")
	}

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.ChangeStatus(target); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ApproveCreditAnalysis approves a pending credit analysis. The score must
// meet the payment method's minimum.
func (s *SaleService) ApproveCreditAnalysis(ctx context.Context, tenantID, saleID uuid.UUID, score int, notes string) (*sales.Sale, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	method, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, sale.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	if err := sale.ApproveCredit(score, method.MinCreditScore, notes); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("credit analysis approved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_code", sale.Code),
		zap.Int("score", score))

	return sale, nil
}

// RejectCreditAnalysis rejects a pending credit analysis and moves the sale
// to REJECTED.
func (s *SaleService) RejectCreditAnalysis(ctx context.Context, tenantID, saleID uuid.UUID, notes string) (*sales.Sale, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.RejectCredit(notes); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("credit analysis rejected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_code", sale.Code))

	return sale, nil
}

// Delete removes an editable sale. Sales that progressed past the editable
// statuses are part of the audit trail and cannot be deleted.
func (s *SaleService) Delete(ctx context.Context, tenantID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return err
	}
	if !sale.IsEditable() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot delete a sale in %s status", sale.Status))
	}
	return s.saleRepo.DeleteForTenant(ctx, tenantID, saleID)
}

func (s *SaleService) buildItems(saleID uuid.UUID, inputs []SaleItemInput) ([]sales.SaleItem, error) {
	items := make([]sales.SaleItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := sales.NewSaleItem(saleID, in.ProductID, in.ProductName, in.StockLocationID,
			in.Quantity, in.UnitPrice, in.Discount)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// checkAvailability validates stock for every item bound to a location.
// This is an advisory check at create/update time; the authoritative
// check-and-decrement happens inside the confirm transaction.
func (s *SaleService) checkAvailability(ctx context.Context, tenantID uuid.UUID, items []sales.SaleItem) error {
	for _, item := range items {
		if item.StockLocationID == nil {
			continue
		}
		stock, err := s.stockRepo.FindByProductAndLocation(ctx, tenantID, item.ProductID, *item.StockLocationID)
		if err != nil {
			return err
		}
		if !stock.CanFulfill(item.Quantity) {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Product %s has %s available, %s requested",
					item.ProductName, stock.Quantity, item.Quantity))
		}
	}
	return nil
}

// moveStock applies one stock change and its movement record atomically with
// respect to the surrounding transaction. The stock row is read with a
// row-level lock so concurrent confirmations on the same row serialize.
func (s *SaleService) moveStock(ctx context.Context, repos TransactionalRepositories, tenantID, productID, locationID uuid.UUID, quantity decimal.Decimal, movementType inventory.MovementType, reason, referenceCode string) error {
	stock, err := repos.Stock().FindForUpdate(ctx, tenantID, productID, locationID)
	if err != nil {
		return err
	}

	previous := stock.Quantity
	switch movementType {
	case inventory.MovementTypeExit:
		err = stock.Decrease(quantity)
	default:
		err = stock.Increase(quantity)
	}
	if err != nil {
		return err
	}

	if err := repos.Stock().Save(ctx, stock); err != nil {
		return err
	}

	movement, err := inventory.NewStockMovement(tenantID, productID, locationID,
		movementType, quantity, previous, stock.Quantity, reason, referenceCode)
	if err != nil {
		return err
	}
	return repos.Movements().Create(ctx, movement)
}
