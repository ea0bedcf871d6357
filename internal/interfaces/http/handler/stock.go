package handler

import (
	"time"

	inventoryapp "github.com/gestor-erp/backend/internal/application/inventory"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles inventory API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// ReceiveStockRequest represents an inbound stock receipt
// @Description Request body for receiving stock at a location
type ReceiveStockRequest struct {
	ProductID  string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	LocationID string  `json:"location_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440003"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0" example:"50"`
	Reason     string  `json:"reason" binding:"required,min=1,max=500" example:"Reposição do fornecedor"`
}

// StockResponse represents a stock record in API responses
// @Description Stock by location response
type StockResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// StockAvailabilityResponse reports whether a location can fulfill a quantity
// @Description Stock availability response
type StockAvailabilityResponse struct {
	ProductID  string  `json:"product_id"`
	LocationID string  `json:"location_id"`
	Requested  float64 `json:"requested"`
	Available  bool    `json:"available"`
}

// StockMovementResponse represents a movement audit record
// @Description Stock movement response
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	Type             string    `json:"type" example:"EXIT"`
	Quantity         float64   `json:"quantity"`
	PreviousQuantity float64   `json:"previous_quantity"`
	NewQuantity      float64   `json:"new_quantity"`
	Reason           string    `json:"reason"`
	ReferenceCode    string    `json:"reference_code,omitempty" example:"SAL-2026-00001"`
	CreatedAt        time.Time `json:"created_at"`
}

// List godoc
// @Summary      List stock records
// @Description  Retrieve paginated stock records with optional product/location filters
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        location_id query string false "Location ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]StockResponse,meta=dto.Meta}
// @Router       /inventory/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, err := buildStockFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.stockService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toStockResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get stock for a product at a location
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        location_id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=StockResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/stock/{product_id}/{location_id} [get]
func (h *StockHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, locationID, ok := h.parseStockPath(c)
	if !ok {
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), tenantID, productID, locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockResponse(stock))
}

// CheckAvailability godoc
// @Summary      Check stock availability
// @Description  Advisory check whether a location can fulfill the requested quantity
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        location_id path string true "Location ID" format(uuid)
// @Param        quantity query number true "Requested quantity"
// @Success      200 {object} dto.Response{data=StockAvailabilityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/stock/{product_id}/{location_id}/availability [get]
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, locationID, ok := h.parseStockPath(c)
	if !ok {
		return
	}

	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil || quantity.LessThanOrEqual(decimal.Zero) {
		h.BadRequest(c, "Quantity must be a positive number")
		return
	}

	available, err := h.stockService.CheckAvailable(c.Request.Context(), tenantID, productID, locationID, quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, StockAvailabilityResponse{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Requested:  quantity.InexactFloat64(),
		Available:  available,
	})
}

// Receive godoc
// @Summary      Receive stock
// @Description  Record an inbound receipt, creating the stock row on first receipt
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body ReceiveStockRequest true "Receipt request"
// @Success      200 {object} dto.Response{data=StockResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/stock/receive [post]
func (h *StockHandler) Receive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	stock, err := h.stockService.ReceiveStock(c.Request.Context(), tenantID, productID, locationID,
		decimal.NewFromFloat(req.Quantity), req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockResponse(stock))
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  Movement history for a (product, location) pair, newest first
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        location_id path string true "Location ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]StockMovementResponse}
// @Router       /inventory/stock/{product_id}/{location_id}/movements [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, locationID, ok := h.parseStockPath(c)
	if !ok {
		return
	}

	filter, err := buildStockFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.stockService.ListMovements(c.Request.Context(), tenantID, productID, locationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockMovementResponses(movements))
}

// ListMovementsByReference godoc
// @Summary      List movements by reference code
// @Description  All movements caused by one sale, oldest first
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        code path string true "Sale code" example:"SAL-2026-00001"
// @Success      200 {object} dto.Response{data=[]StockMovementResponse}
// @Router       /inventory/movements/reference/{code} [get]
func (h *StockHandler) ListMovementsByReference(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Reference code is required")
		return
	}

	movements, err := h.stockService.ListMovementsByReference(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockMovementResponses(movements))
}

// parseStockPath parses the product and location path parameters
func (h *StockHandler) parseStockPath(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return uuid.Nil, uuid.Nil, false
	}
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return productID, locationID, true
}

// buildStockFilter assembles the repository filter from query parameters
func buildStockFilter(c *gin.Context) (shared.Filter, error) {
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

	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid product ID format")
		}
		filter.Filters["product_id"] = id
	}
	if locationID := c.Query("location_id"); locationID != "" {
		id, err := uuid.Parse(locationID)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "Invalid location ID format")
		}
		filter.Filters["location_id"] = id
	}

	return filter, nil
}

// toStockResponse converts a domain stock record to its API shape
func toStockResponse(stock *inventory.StockByLocation) StockResponse {
	return StockResponse{
		ID:         stock.ID.String(),
		TenantID:   stock.TenantID.String(),
		ProductID:  stock.ProductID.String(),
		LocationID: stock.LocationID.String(),
		Quantity:   stock.Quantity.InexactFloat64(),
		CreatedAt:  stock.CreatedAt,
		UpdatedAt:  stock.UpdatedAt,
		Version:    stock.Version,
	}
}

// toStockResponses converts a page of stock records
func toStockResponses(items []inventory.StockByLocation) []StockResponse {
	responses := make([]StockResponse, len(items))
	for i := range items {
		responses[i] = toStockResponse(&items[i])
	}
	return responses
}

// toStockMovementResponses converts movement audit records
func toStockMovementResponses(movements []inventory.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = StockMovementResponse{
			ID:               m.ID.String(),
			ProductID:        m.ProductID.String(),
			LocationID:       m.LocationID.String(),
			Type:             m.Type.String(),
			Quantity:         m.Quantity.InexactFloat64(),
			PreviousQuantity: m.PreviousQuantity.InexactFloat64(),
			NewQuantity:      m.NewQuantity.InexactFloat64(),
			Reason:           m.Reason,
			ReferenceCode:    m.ReferenceCode,
			CreatedAt:        m.CreatedAt,
		}
	}
	return responses
}
