package handler

import (
	"time"

	salesapp "github.com/gestor-erp/backend/internal/application/sales"
	"github.com/gestor-erp/backend/internal/domain/sales"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale lifecycle API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// Create godoc
// @Summary      Create a new sale
// @Description  Create a sale in QUOTE (or PENDING_APPROVAL) status with priced items
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body CreateSaleRequest true "Sale creation request"
// @Success      201 {object} dto.Response{data=SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	paymentMethodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	items, err := toSaleItemInputs(req.Items)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	input := salesapp.CreateSaleInput{
		CustomerID:      customerID,
		CustomerName:    req.CustomerName,
		PaymentMethodID: paymentMethodID,
		Installments:    installments,
		InitialStatus:   sales.SaleStatus(req.InitialStatus),
		Items:           items,
		DiscountAmount:  decimal.NewFromFloat(req.DiscountAmount),
		DiscountPercent: decimal.NewFromFloat(req.DiscountPercent),
		ShippingCost:    decimal.NewFromFloat(req.ShippingCost),
		OtherCharges:    decimal.NewFromFloat(req.OtherCharges),
		Notes:           req.Notes,
	}

	sale, err := h.saleService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toSaleResponse(sale))
}

// GetByID godoc
// @Summary      Get sale by ID
// @Description  Retrieve a sale and its items by ID
// @Tags         sales
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// GetByCode godoc
// @Summary      Get sale by code
// @Description  Retrieve a sale by its sequential code
// @Tags         sales
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        code path string true "Sale code" example:"SAL-2026-00001"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/code/{code} [get]
func (h *SaleHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Sale code is required")
		return
	}

	sale, err := h.saleService.GetByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// List godoc
// @Summary      List sales
// @Description  Retrieve a paginated list of sales with optional filtering
// @Tags         sales
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        search query string false "Search term (code, customer name)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        payment_method_id query string false "Payment method ID" format(uuid)
// @Param        status query string false "Lifecycle status"
// @Param        statuses query []string false "Multiple lifecycle statuses"
// @Param        credit_status query string false "Credit analysis status" Enums(PENDING, APPROVED, REJECTED)
// @Param        start_date query string false "Start date (ISO 8601)" format(date-time)
// @Param        end_date query string false "End date (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]SaleResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, err := buildSaleFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.saleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toSaleResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// GetStatusSummary godoc
// @Summary      Get sale status summary
// @Description  Count of sales per lifecycle status for dashboards
// @Tags         sales
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Success      200 {object} dto.Response{data=[]SaleStatusCountResponse}
// @Router       /sales/stats/summary [get]
func (h *SaleHandler) GetStatusSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	summary, err := h.saleService.StatusSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStatusCountResponses(summary))
}

// Update godoc
// @Summary      Update a sale
// @Description  Update an editable sale; resent items trigger a full repricing
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body UpdateSaleRequest true "Sale update request"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := salesapp.UpdateSaleInput{}

	if req.Items != nil {
		items, err := toSaleItemInputs(*req.Items)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		if items == nil {
			items = []salesapp.SaleItemInput{}
		}
		input.Items = items
	}
	if req.PaymentMethodID != nil {
		paymentMethodID, err := uuid.Parse(*req.PaymentMethodID)
		if err != nil {
			h.BadRequest(c, "Invalid payment method ID format")
			return
		}
		input.PaymentMethodID = &paymentMethodID
	}
	input.Installments = req.Installments
	input.Notes = req.Notes

	if req.DiscountAmount != nil {
		d := decimal.NewFromFloat(*req.DiscountAmount)
		input.DiscountAmount = &d
	}
	if req.DiscountPercent != nil {
		d := decimal.NewFromFloat(*req.DiscountPercent)
		input.DiscountPercent = &d
	}
	if req.ShippingCost != nil {
		d := decimal.NewFromFloat(*req.ShippingCost)
		input.ShippingCost = &d
	}
	if req.OtherCharges != nil {
		d := decimal.NewFromFloat(*req.OtherCharges)
		input.OtherCharges = &d
	}

	sale, err := h.saleService.Update(c.Request.Context(), tenantID, saleID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// Delete godoc
// @Summary      Delete a sale
// @Description  Delete a sale (editable statuses only)
// @Tags         sales
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), tenantID, saleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Confirm godoc
// @Summary      Confirm a sale
// @Description  Confirm an approved sale, decrementing stock and scheduling receivables
// @Tags         sales
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=ConfirmSaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/confirm [post]
func (h *SaleHandler) Confirm(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	result, err := h.saleService.Confirm(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ConfirmSaleResponse{
		Sale:          toSaleResponse(result.Sale),
		LedgerWarning: result.LedgerWarning,
	})
}

// Cancel godoc
// @Summary      Cancel a sale
// @Description  Cancel a sale, restoring held stock and voiding open receivables
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body CancelSaleRequest true "Cancel sale request"
// @Success      200 {object} dto.Response{data=CancelSaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.saleService.Cancel(c.Request.Context(), tenantID, saleID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, CancelSaleResponse{
		Sale:                toSaleResponse(result.Sale),
		CanceledReceivables: result.CanceledReceivables,
		LedgerWarning:       result.LedgerWarning,
	})
}

// ChangeStatus godoc
// @Summary      Change sale status
// @Description  Perform a table-driven transition; confirm and cancel have dedicated endpoints
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body ChangeSaleStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/status [post]
func (h *SaleHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req ChangeSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.ChangeStatus(c.Request.Context(), tenantID, saleID, sales.SaleStatus(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// ApproveCredit godoc
// @Summary      Approve credit analysis
// @Description  Approve a pending credit analysis with the evaluated score
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body ApproveCreditRequest true "Approval request"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/credit/approve [post]
func (h *SaleHandler) ApproveCredit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req ApproveCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.ApproveCreditAnalysis(c.Request.Context(), tenantID, saleID, req.Score, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// RejectCredit godoc
// @Summary      Reject credit analysis
// @Description  Reject a pending credit analysis, moving the sale to REJECTED
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body RejectCreditRequest false "Rejection request"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/credit/reject [post]
func (h *SaleHandler) RejectCredit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req RejectCreditRequest
	// Allow empty body
	_ = c.ShouldBindJSON(&req)

	sale, err := h.saleService.RejectCreditAnalysis(c.Request.Context(), tenantID, saleID, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSaleResponse(sale))
}

// toSaleItemInputs converts request items to application inputs
func toSaleItemInputs(items []CreateSaleItemInput) ([]salesapp.SaleItemInput, error) {
	inputs := make([]salesapp.SaleItemInput, 0, len(items))
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Invalid product ID format")
		}

		input := salesapp.SaleItemInput{
			ProductID:   productID,
			ProductName: item.ProductName,
			Quantity:    decimal.NewFromFloat(item.Quantity),
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			Discount:    decimal.NewFromFloat(item.Discount),
		}

		if item.StockLocationID != nil && *item.StockLocationID != "" {
			locationID, err := uuid.Parse(*item.StockLocationID)
			if err != nil {
				return nil, shared.NewDomainError("INVALID_LOCATION", "Invalid stock location ID format")
			}
			input.StockLocationID = &locationID
		}

		inputs = append(inputs, input)
	}
	return inputs, nil
}

// buildSaleFilter assembles the repository filter from query parameters
func buildSaleFilter(c *gin.Context) (shared.Filter, error) {
	filter := shared.DefaultFilter()

	if page := c.Query("page"); page != "" {
		if err := bindPositiveInt(page, &filter.Page); err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid page number")
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		if err := bindPositiveInt(pageSize, &filter.PageSize); err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid page size")
		}
		if filter.PageSize > 100 {
			filter.PageSize = 100
		}
	}

	filter.Search = c.Query("search")

	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid customer ID format")
		}
		filter.Filters["customer_id"] = id
	}
	if paymentMethodID := c.Query("payment_method_id"); paymentMethodID != "" {
		id, err := uuid.Parse(paymentMethodID)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid payment method ID format")
		}
		filter.Filters["payment_method_id"] = id
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if statuses := c.QueryArray("statuses"); len(statuses) > 0 {
		filter.Filters["statuses"] = statuses
	}
	if creditStatus := c.Query("credit_status"); creditStatus != "" {
		filter.Filters["credit_status"] = creditStatus
	}
	if startDate := c.Query("start_date"); startDate != "" {
		parsed, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid start date, expected ISO 8601")
		}
		filter.Filters["start_date"] = parsed
	}
	if endDate := c.Query("end_date"); endDate != "" {
		parsed, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid end date, expected ISO 8601")
		}
		filter.Filters["end_date"] = parsed
	}

	return filter, nil
}
