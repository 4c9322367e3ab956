package product

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"optic-storefront/internal/domain"
	productrepo "optic-storefront/internal/repository/product"
)

func TestFeaturedLimitsNewProducts(t *testing.T) {
	var products []domain.Product
	for i := 1; i <= 6; i++ {
		products = append(products, domain.Product{ID: strconv.Itoa(i), Name: "Frame", IsNew: i != 2})
	}
	svc := New(productrepo.NewMemory(products))

	featured, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(featured) != FeaturedLimit {
		t.Fatalf("expected %d featured, got %d", FeaturedLimit, len(featured))
	}
	if featured[1].ID != "3" {
		t.Fatalf("expected catalog order skipping non-new, got %s", featured[1].ID)
	}
}

func TestGetUnknown(t *testing.T) {
	svc := New(productrepo.NewMemory(nil))
	if _, err := svc.Get(context.Background(), "9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
