package checkout

import (
	"optic-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the subtotal above which shipping is waived.
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.NewFromInt(10)
	TaxRate               = decimal.RequireFromString("0.10")
)

// Quote computes shipping, tax and total for a subtotal. A subtotal of exactly
// the threshold still pays shipping.
func Quote(subtotal decimal.Decimal) domain.Quote {
	q := domain.Quote{
		Subtotal:              subtotal,
		Shipping:              ShippingFee,
		Tax:                   subtotal.Mul(TaxRate).Round(2),
		FreeShippingRemaining: decimal.Zero,
		Currency:              domain.DefaultCurrency.String(),
	}
	if subtotal.GreaterThan(FreeShippingThreshold) {
		q.Shipping = decimal.Zero
		q.FreeShipping = true
	}
	if subtotal.LessThan(FreeShippingThreshold) {
		q.FreeShippingRemaining = FreeShippingThreshold.Sub(subtotal)
	}
	q.Total = q.Subtotal.Add(q.Shipping).Add(q.Tax)
	return q
}
