package product

import (
	"context"

	"optic-storefront/internal/domain"
	productrepo "optic-storefront/internal/repository/product"
)

// FeaturedLimit caps the new-arrivals strip on the home page.
const FeaturedLimit = 4

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Featured returns the first new products in catalog order.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{NewOnly: true})
	if err != nil {
		return nil, err
	}
	if len(products) > FeaturedLimit {
		products = products[:FeaturedLimit]
	}
	return products, nil
}
