package sales

import (
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals is the output of the pricing calculator
type Totals struct {
	Subtotal         decimal.Decimal
	DiscountAmount   decimal.Decimal
	DiscountPercent  decimal.Decimal
	ShippingCost     decimal.Decimal
	OtherCharges     decimal.Decimal
	TotalAmount      decimal.Decimal
	InstallmentValue decimal.Decimal
}

// ComputeTotals derives the sale totals from its line items.
//
//	subtotal      = sum of item totals (unit price * quantity - item discount)
//	totalDiscount = discountAmount + subtotal * discountPercent / 100
//	total         = subtotal - totalDiscount + shippingCost + otherCharges
//
// installmentValue is total / installments, rounded to cents.
func ComputeTotals(items []SaleItem, discountAmount, discountPercent, shippingCost, otherCharges decimal.Decimal, installments int) (Totals, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	return ComputeTotalsFromSubtotal(subtotal, discountAmount, discountPercent, shippingCost, otherCharges, installments)
}

// ComputeTotalsFromSubtotal recomputes totals from an already-known subtotal.
// Used on update when items were not resent: items are frozen outside the
// editable statuses and the stored subtotal is authoritative.
func ComputeTotalsFromSubtotal(subtotal, discountAmount, discountPercent, shippingCost, otherCharges decimal.Decimal, installments int) (Totals, error) {
	if installments < 1 {
		return Totals{}, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	if discountAmount.IsNegative() || shippingCost.IsNegative() || otherCharges.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Discount, shipping and charges cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Discount percent must be between 0 and 100")
	}

	percentDiscount := subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	totalDiscount := discountAmount.Add(percentDiscount)
	total := subtotal.Sub(totalDiscount).Add(shippingCost).Add(otherCharges)
	if total.IsNegative() {
		return Totals{}, shared.NewDomainError("BUSINESS_RULE", "Total discount cannot exceed the sale subtotal")
	}

	installmentValue := total.Div(decimal.NewFromInt(int64(installments))).Round(2)

	return Totals{
		Subtotal:         subtotal,
		DiscountAmount:   discountAmount,
		DiscountPercent:  discountPercent,
		ShippingCost:     shippingCost,
		OtherCharges:     otherCharges,
		TotalAmount:      total,
		InstallmentValue: installmentValue,
	}, nil
}
