package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string            `json:"id" yaml:"id"`
	Key            string            `json:"key" yaml:"key"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description,omitempty" yaml:"description"`
	Price          decimal.Decimal   `json:"price" yaml:"price"`
	Currency       string            `json:"currency" yaml:"currency"`
	Category       string            `json:"category" yaml:"category"`
	Image          string            `json:"image" yaml:"image"`
	Images         []string          `json:"images,omitempty" yaml:"images"`
	IsNew          bool              `json:"isNew" yaml:"isNew"`
	Rating         float64           `json:"rating,omitempty" yaml:"rating"`
	ReviewCount    int               `json:"reviewCount,omitempty" yaml:"reviewCount"`
	Features       []string          `json:"features,omitempty" yaml:"features"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications"`
	InStock        bool              `json:"inStock" yaml:"inStock"`
	Stock          int               `json:"stock" yaml:"stock"`
	CreatedAt      time.Time         `json:"createdAt,omitempty" yaml:"-"`
}

// CartItem snapshots the product into a cart line with the given quantity.
func (p Product) CartItem(quantity int) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: quantity,
	}
}

// ProductFilter narrows a catalog listing. Zero values match everything.
type ProductFilter struct {
	Query    string
	Category string
	NewOnly  bool
}

// Match reports whether p passes the filter: case-insensitive name substring,
// exact category and the "new" flag.
func (f ProductFilter) Match(p Product) bool {
	if q := strings.TrimSpace(f.Query); q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.NewOnly && !p.IsNew {
		return false
	}
	return true
}
