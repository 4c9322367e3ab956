package domain

import "github.com/shopspring/decimal"

// CustomerDetails is what the checkout form collects. Only presence is checked.
type CustomerDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// FullName joins first and last name.
func (d CustomerDetails) FullName() string {
	switch {
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Quote is the checkout math shown next to the cart.
type Quote struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
	FreeShipping          bool            `json:"freeShipping"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
	Currency              string          `json:"currency"`
}

// Order is the outcome of a checkout: the composed message and the outbound link.
// Nothing about it is stored server-side.
type Order struct {
	ID       string          `json:"id"`
	Customer CustomerDetails `json:"customer"`
	Items    []CartItem      `json:"items"`
	Quote    Quote           `json:"quote"`
	Message  string          `json:"message"`
	URL      string          `json:"url"`
}
