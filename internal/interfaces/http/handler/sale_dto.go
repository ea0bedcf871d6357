package handler

import (
	"time"

	salesapp "github.com/gestor-erp/backend/internal/application/sales"
	"github.com/gestor-erp/backend/internal/domain/sales"
)

// CreateSaleItemInput represents a line item in the create/update sale request
// @Description Sale line item
type CreateSaleItemInput struct {
	ProductID       string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	ProductName     string  `json:"product_name" binding:"required,min=1,max=200" example:"Cadeira Gamer"`
	StockLocationID *string `json:"stock_location_id" example:"550e8400-e29b-41d4-a716-446655440003"`
	Quantity        float64 `json:"quantity" binding:"required,gt=0" example:"2"`
	UnitPrice       float64 `json:"unit_price" binding:"gte=0" example:"899.90"`
	Discount        float64 `json:"discount" binding:"gte=0" example:"50.00"`
}

// CreateSaleRequest represents a request to create a new sale
// @Description Request body for creating a new sale
type CreateSaleRequest struct {
	CustomerID      string                `json:"customer_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerName    string                `json:"customer_name" binding:"required,min=1,max=200" example:"ACME Ltda"`
	PaymentMethodID string                `json:"payment_method_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Installments    int                   `json:"installments" binding:"omitempty,min=1" example:"3"`
	InitialStatus   string                `json:"initial_status" binding:"omitempty,oneof=QUOTE PENDING_APPROVAL" example:"QUOTE"`
	Items           []CreateSaleItemInput `json:"items"`
	DiscountAmount  float64               `json:"discount_amount" binding:"gte=0" example:"100.00"`
	DiscountPercent float64               `json:"discount_percent" binding:"gte=0,lte=100" example:"5"`
	ShippingCost    float64               `json:"shipping_cost" binding:"gte=0" example:"45.00"`
	OtherCharges    float64               `json:"other_charges" binding:"gte=0" example:"0"`
	Notes           string                `json:"notes" binding:"max=1000" example:"Entrega agendada"`
}

// UpdateSaleRequest represents a request to update an editable sale.
// Absent fields keep their stored values; an absent items array keeps the
// stored items and subtotal.
// @Description Request body for updating a sale (editable statuses only)
type UpdateSaleRequest struct {
	Items           *[]CreateSaleItemInput `json:"items"`
	PaymentMethodID *string                `json:"payment_method_id" binding:"omitempty,uuid"`
	Installments    *int                   `json:"installments" binding:"omitempty,min=1"`
	DiscountAmount  *float64               `json:"discount_amount" binding:"omitempty,gte=0"`
	DiscountPercent *float64               `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	ShippingCost    *float64               `json:"shipping_cost" binding:"omitempty,gte=0"`
	OtherCharges    *float64               `json:"other_charges" binding:"omitempty,gte=0"`
	Notes           *string                `json:"notes" binding:"omitempty,max=1000"`
}

// CancelSaleRequest represents a request to cancel a sale
// @Description Request body for cancelling a sale
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"Cliente desistiu da compra"`
}

// ChangeSaleStatusRequest represents a generic status transition request
// @Description Request body for a table-driven status transition
type ChangeSaleStatusRequest struct {
	Status string `json:"status" binding:"required" example:"IN_PRODUCTION"`
}

// ApproveCreditRequest represents a credit analysis approval request
// @Description Request body for approving a pending credit analysis
type ApproveCreditRequest struct {
	Score int    `json:"score" binding:"required,min=0,max=1000" example:"720"`
	Notes string `json:"notes" binding:"max=1000" example:"Serasa limpo"`
}

// RejectCreditRequest represents a credit analysis rejection request
// @Description Request body for rejecting a pending credit analysis
type RejectCreditRequest struct {
	Notes string `json:"notes" binding:"max=1000" example:"Restrição ativa"`
}

// SaleItemResponse represents a sale item in API responses
// @Description Sale item response
type SaleItemResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	StockLocationID *string   `json:"stock_location_id,omitempty"`
	Quantity        float64   `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	Discount        float64   `json:"discount"`
	Subtotal        float64   `json:"subtotal"`
	Total           float64   `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaleResponse represents a sale in API responses
// @Description Sale response
type SaleResponse struct {
	ID              string             `json:"id"`
	TenantID        string             `json:"tenant_id"`
	Code            string             `json:"code" example:"SAL-2026-00001"`
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	PaymentMethodID string             `json:"payment_method_id"`
	Installments    int                `json:"installments"`
	Items           []SaleItemResponse `json:"items"`
	ItemCount       int                `json:"item_count"`

	Subtotal         float64 `json:"subtotal"`
	DiscountAmount   float64 `json:"discount_amount"`
	DiscountPercent  float64 `json:"discount_percent"`
	ShippingCost     float64 `json:"shipping_cost"`
	OtherCharges     float64 `json:"other_charges"`
	TotalAmount      float64 `json:"total_amount"`
	InstallmentValue float64 `json:"installment_value"`

	Status string `json:"status" example:"QUOTE"`

	CreditAnalysisRequired bool       `json:"credit_analysis_required"`
	CreditStatus           string     `json:"credit_status,omitempty"`
	CreditScore            *int       `json:"credit_score,omitempty"`
	CreditNotes            string     `json:"credit_notes,omitempty"`
	CreditAnalyzedAt       *time.Time `json:"credit_analyzed_at,omitempty"`

	QuoteDate          time.Time  `json:"quote_date"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	Notes              string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ConfirmSaleResponse represents the outcome of a sale confirmation
// @Description Confirm sale response, possibly carrying a ledger warning
type ConfirmSaleResponse struct {
	Sale          SaleResponse `json:"sale"`
	LedgerWarning string       `json:"ledger_warning,omitempty"`
}

// CancelSaleResponse represents the outcome of a sale cancellation
// @Description Cancel sale response, with the count of voided receivables
type CancelSaleResponse struct {
	Sale                SaleResponse `json:"sale"`
	CanceledReceivables int64        `json:"canceled_receivables"`
	LedgerWarning       string       `json:"ledger_warning,omitempty"`
}

// SaleStatusCountResponse is one row of the status summary
// @Description Count of sales in one lifecycle status
type SaleStatusCountResponse struct {
	Status string `json:"status" example:"CONFIRMED"`
	Count  int64  `json:"count" example:"12"`
}

// toSaleItemResponse converts a domain sale item to its API shape
func toSaleItemResponse(item sales.SaleItem) SaleItemResponse {
	resp := SaleItemResponse{
		ID:          item.ID.String(),
		ProductID:   item.ProductID.String(),
		ProductName: item.ProductName,
		Quantity:    item.Quantity.InexactFloat64(),
		UnitPrice:   item.UnitPrice.InexactFloat64(),
		Discount:    item.Discount.InexactFloat64(),
		Subtotal:    item.Subtotal.InexactFloat64(),
		Total:       item.Total.InexactFloat64(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.StockLocationID != nil {
		locationID := item.StockLocationID.String()
		resp.StockLocationID = &locationID
	}
	return resp
}

// toSaleResponse converts a domain sale to its API shape
func toSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = toSaleItemResponse(item)
	}

	return SaleResponse{
		ID:              sale.ID.String(),
		TenantID:        sale.TenantID.String(),
		Code:            sale.Code,
		CustomerID:      sale.CustomerID.String(),
		CustomerName:    sale.CustomerName,
		PaymentMethodID: sale.PaymentMethodID.String(),
		Installments:    sale.Installments,
		Items:           items,
		ItemCount:       sale.ItemCount(),

		Subtotal:         sale.Subtotal.InexactFloat64(),
		DiscountAmount:   sale.DiscountAmount.InexactFloat64(),
		DiscountPercent:  sale.DiscountPercent.InexactFloat64(),
		ShippingCost:     sale.ShippingCost.InexactFloat64(),
		OtherCharges:     sale.OtherCharges.InexactFloat64(),
		TotalAmount:      sale.TotalAmount.InexactFloat64(),
		InstallmentValue: sale.InstallmentValue.InexactFloat64(),

		Status: sale.Status.String(),

		CreditAnalysisRequired: sale.CreditAnalysisRequired,
		CreditStatus:           sale.CreditStatus.String(),
		CreditScore:            sale.CreditScore,
		CreditNotes:            sale.CreditNotes,
		CreditAnalyzedAt:       sale.CreditAnalyzedAt,

		QuoteDate:          sale.QuoteDate,
		ConfirmedAt:        sale.ConfirmedAt,
		CanceledAt:         sale.CanceledAt,
		CancellationReason: sale.CancellationReason,
		Notes:              sale.Notes,

		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.UpdatedAt,
		Version:   sale.Version,
	}
}

// toSaleResponses converts a page of domain sales
func toSaleResponses(items []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = toSaleResponse(&items[i])
	}
	return responses
}

// toStatusCountResponses converts the application status summary
func toStatusCountResponses(summary []salesapp.StatusCount) []SaleStatusCountResponse {
	responses := make([]SaleStatusCountResponse, len(summary))
	for i, row := range summary {
		responses[i] = SaleStatusCountResponse{
			Status: row.Status.String(),
			Count:  row.Count,
		}
	}
	return responses
}
