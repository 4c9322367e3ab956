package category

import (
	"context"

	"optic-storefront/internal/domain"
)

type memoryRepo struct {
	categories []domain.Category
}

func NewMemory(categories []domain.Category) Repository {
	return &memoryRepo{categories: categories}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
