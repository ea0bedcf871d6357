package handler

import (
	"time"

	financeapp "github.com/gestor-erp/backend/internal/application/finance"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivableHandler handles accounts receivable API endpoints
type ReceivableHandler struct {
	BaseHandler
	receivableService *financeapp.ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivableService *financeapp.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{
		receivableService: receivableService,
	}
}

// ReceivableResponse represents a receivable installment in API responses
// @Description Accounts receivable installment response
type ReceivableResponse struct {
	ID                string     `json:"id"`
	TenantID          string     `json:"tenant_id"`
	CustomerID        string     `json:"customer_id"`
	CustomerName      string     `json:"customer_name"`
	DocumentNumber    string     `json:"document_number" example:"SAL-2026-00001"`
	InstallmentNumber int        `json:"installment_number" example:"1"`
	TotalInstallments int        `json:"total_installments" example:"3"`
	OriginalAmount    float64    `json:"original_amount" example:"33.34"`
	DueDate           time.Time  `json:"due_date"`
	Status            string     `json:"status" example:"PENDENTE"`
	Description       string     `json:"description,omitempty"`
	ReceivedAt        *time.Time `json:"received_at,omitempty"`
	CanceledAt        *time.Time `json:"canceled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// GetByID godoc
// @Summary      Get receivable by ID
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Receivable ID" format(uuid)
// @Success      200 {object} dto.Response{data=ReceivableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/receivables/{id} [get]
func (h *ReceivableHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	receivableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	receivable, err := h.receivableService.GetByID(c.Request.Context(), tenantID, receivableID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// ListByDocument godoc
// @Summary      List receivables of one sale
// @Description  All installments tied to a sale code, ordered by installment number
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        document_number path string true "Sale code" example:"SAL-2026-00001"
// @Success      200 {object} dto.Response{data=[]ReceivableResponse}
// @Router       /finance/receivables/document/{document_number} [get]
func (h *ReceivableHandler) ListByDocument(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	documentNumber := c.Param("document_number")
	if documentNumber == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	receivables, err := h.receivableService.ListByDocumentNumber(c.Request.Context(), tenantID, documentNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toReceivableResponses(receivables))
}

// MarkReceived godoc
// @Summary      Settle an installment
// @Description  Mark an open installment as received
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Receivable ID" format(uuid)
// @Success      200 {object} dto.Response{data=ReceivableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/receivables/{id}/receive [post]
func (h *ReceivableHandler) MarkReceived(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	receivableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	receivable, err := h.receivableService.MarkReceived(c.Request.Context(), tenantID, receivableID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// MarkOverdue godoc
// @Summary      Flag an installment overdue
// @Description  Mark a pending installment past its due date as overdue
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Receivable ID" format(uuid)
// @Success      200 {object} dto.Response{data=ReceivableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/receivables/{id}/overdue [post]
func (h *ReceivableHandler) MarkOverdue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	receivableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	receivable, err := h.receivableService.MarkOverdue(c.Request.Context(), tenantID, receivableID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// toReceivableResponse converts a domain receivable to its API shape
func toReceivableResponse(r *finance.AccountReceivable) ReceivableResponse {
	return ReceivableResponse{
		ID:                r.ID.String(),
		TenantID:          r.TenantID.String(),
		CustomerID:        r.CustomerID.String(),
		CustomerName:      r.CustomerName,
		DocumentNumber:    r.DocumentNumber,
		InstallmentNumber: r.InstallmentNumber,
		TotalInstallments: r.TotalInstallments,
		OriginalAmount:    r.OriginalAmount.InexactFloat64(),
		DueDate:           r.DueDate,
		Status:            r.Status.String(),
		Description:       r.Description,
		ReceivedAt:        r.ReceivedAt,
		CanceledAt:        r.CanceledAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// toReceivableResponses converts a list of receivables
func toReceivableResponses(items []finance.AccountReceivable) []ReceivableResponse {
	responses := make([]ReceivableResponse, len(items))
	for i := range items {
		responses[i] = toReceivableResponse(&items[i])
	}
	return responses
}
