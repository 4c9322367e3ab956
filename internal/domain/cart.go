package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. Name, Price and Image are a snapshot of the
// product taken when the line was first added.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the line items of one browser session. Items keep insertion order
// and are unique by ID; every quantity is at least 1.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) Cart {
	return Cart{SessionID: sessionID, Items: []CartItem{}}
}

// AddItem merges quantity into the line with the same ID, or appends a new line.
func (c *Cart) AddItem(item CartItem, quantity int) {
	if idx := c.indexOf(item.ID); idx >= 0 {
		c.Items[idx].Quantity = clampQuantity(c.Items[idx].Quantity + quantity)
		return
	}
	item.Quantity = clampQuantity(quantity)
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a line. Values below 1 become 1; unknown
// IDs are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if idx := c.indexOf(id); idx >= 0 {
		c.Items[idx].Quantity = clampQuantity(quantity)
	}
}

// RemoveItem deletes the line with the given ID if present.
func (c *Cart) RemoveItem(id string) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// TotalItems is the badge count: the sum of all quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the subtotal of all lines.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy safe to hand to other goroutines.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

func (c Cart) indexOf(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
