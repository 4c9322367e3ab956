package product

import (
	"context"

	"optic-storefront/internal/domain"
)

// memoryRepo serves the fixed catalog shipped with the binary.
type memoryRepo struct {
	products []domain.Product
	byID     map[string]int
}

// NewMemory returns a read-only repository over products, keeping their order.
func NewMemory(products []domain.Product) Repository {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &memoryRepo{products: products, byID: byID}
}

func (r *memoryRepo) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Match(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.products[idx]
	return &p, nil
}
