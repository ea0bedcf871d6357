package handler

import (
	"time"

	paymentapp "github.com/gestor-erp/backend/internal/application/payment"
	"github.com/gestor-erp/backend/internal/domain/payment"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentMethodHandler handles payment method API endpoints
type PaymentMethodHandler struct {
	BaseHandler
	methodService *paymentapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(methodService *paymentapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		methodService: methodService,
	}
}

// CreatePaymentMethodRequest represents a request to create a payment method
// @Description Request body for creating a payment method
type CreatePaymentMethodRequest struct {
	Name                   string `json:"name" binding:"required,min=1,max=100" example:"Boleto Parcelado"`
	Code                   string `json:"code" binding:"required,min=1,max=50" example:"BOLETO"`
	AllowInstallments      bool   `json:"allow_installments" example:"true"`
	MaxInstallments        int    `json:"max_installments" binding:"omitempty,min=1" example:"12"`
	RequiresCreditAnalysis bool   `json:"requires_credit_analysis" example:"true"`
	MinCreditScore         int    `json:"min_credit_score" binding:"omitempty,min=0,max=1000" example:"600"`
}

// UpdatePaymentMethodRequest represents a request to update a payment method
// @Description Request body for updating a payment method policy
type UpdatePaymentMethodRequest struct {
	Name                   *string `json:"name" binding:"omitempty,min=1,max=100"`
	AllowInstallments      *bool   `json:"allow_installments"`
	MaxInstallments        *int    `json:"max_installments" binding:"omitempty,min=1"`
	RequiresCreditAnalysis *bool   `json:"requires_credit_analysis"`
	MinCreditScore         *int    `json:"min_credit_score" binding:"omitempty,min=0,max=1000"`
}

// PaymentMethodResponse represents a payment method in API responses
// @Description Payment method response
type PaymentMethodResponse struct {
	ID                     string    `json:"id"`
	TenantID               string    `json:"tenant_id"`
	Name                   string    `json:"name"`
	Code                   string    `json:"code"`
	AllowInstallments      bool      `json:"allow_installments"`
	MaxInstallments        int       `json:"max_installments"`
	RequiresCreditAnalysis bool      `json:"requires_credit_analysis"`
	MinCreditScore         int       `json:"min_credit_score"`
	Active                 bool      `json:"active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Create godoc
// @Summary      Create a payment method
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body CreatePaymentMethodRequest true "Payment method creation request"
// @Success      201 {object} dto.Response{data=PaymentMethodResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method, err := h.methodService.Create(c.Request.Context(), tenantID, paymentapp.CreatePaymentMethodInput{
		Name:                   req.Name,
		Code:                   req.Code,
		AllowInstallments:      req.AllowInstallments,
		MaxInstallments:        req.MaxInstallments,
		RequiresCreditAnalysis: req.RequiresCreditAnalysis,
		MinCreditScore:         req.MinCreditScore,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toPaymentMethodResponse(method))
}

// GetByID godoc
// @Summary      Get payment method by ID
// @Tags         payment-methods
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      200 {object} dto.Response{data=PaymentMethodResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	method, err := h.methodService.GetByID(c.Request.Context(), tenantID, methodID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPaymentMethodResponse(method))
}

// List godoc
// @Summary      List payment methods
// @Tags         payment-methods
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        active query bool false "Filter by active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]PaymentMethodResponse,meta=dto.Meta}
// @Router       /payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter := shared.DefaultFilter()
	if page := c.Query("page"); page != "" {
		if err := bindPositiveInt(page, &filter.Page); err != nil {
			h.BadRequest(c, "Invalid page number")
			return
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		if err := bindPositiveInt(pageSize, &filter.PageSize); err != nil {
			h.BadRequest(c, "Invalid page size")
			return
		}
		if filter.PageSize > 100 {
			filter.PageSize = 100
		}
	}
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active == "true"
	}

	page, err := h.methodService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPaymentMethodResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Update godoc
// @Summary      Update a payment method
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Payment method ID" format(uuid)
// @Param        request body UpdatePaymentMethodRequest true "Payment method update request"
// @Success      200 {object} dto.Response{data=PaymentMethodResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment-methods/{id} [put]
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method, err := h.methodService.Update(c.Request.Context(), tenantID, methodID, paymentapp.UpdatePaymentMethodInput{
		Name:                   req.Name,
		AllowInstallments:      req.AllowInstallments,
		MaxInstallments:        req.MaxInstallments,
		RequiresCreditAnalysis: req.RequiresCreditAnalysis,
		MinCreditScore:         req.MinCreditScore,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPaymentMethodResponse(method))
}

// Activate godoc
// @Summary      Activate a payment method
// @Tags         payment-methods
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      200 {object} dto.Response{data=PaymentMethodResponse}
// @Router       /payment-methods/{id}/activate [post]
func (h *PaymentMethodHandler) Activate(c *gin.Context) {
	h.toggleActive(c, true)
}

// Deactivate godoc
// @Summary      Deactivate a payment method
// @Description  Disable the method for new sales; existing sales keep referencing it
// @Tags         payment-methods
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      200 {object} dto.Response{data=PaymentMethodResponse}
// @Router       /payment-methods/{id}/deactivate [post]
func (h *PaymentMethodHandler) Deactivate(c *gin.Context) {
	h.toggleActive(c, false)
}

func (h *PaymentMethodHandler) toggleActive(c *gin.Context, active bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	var method *payment.PaymentMethod
	if active {
		method, err = h.methodService.Activate(c.Request.Context(), tenantID, methodID)
	} else {
		method, err = h.methodService.Deactivate(c.Request.Context(), tenantID, methodID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPaymentMethodResponse(method))
}

// toPaymentMethodResponse converts a domain payment method to its API shape
func toPaymentMethodResponse(method *payment.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:                     method.ID.String(),
		TenantID:               method.TenantID.String(),
		Name:                   method.Name,
		Code:                   method.Code,
		AllowInstallments:      method.AllowInstallments,
		MaxInstallments:        method.MaxInstallments,
		RequiresCreditAnalysis: method.RequiresCreditAnalysis,
		MinCreditScore:         method.MinCreditScore,
		Active:                 method.Active,
		CreatedAt:              method.CreatedAt,
		UpdatedAt:              method.UpdatedAt,
	}
}

// toPaymentMethodResponses converts a page of payment methods
func toPaymentMethodResponses(items []payment.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(items))
	for i := range items {
		responses[i] = toPaymentMethodResponse(&items[i])
	}
	return responses
}
