package product

import (
	"context"
	"testing"

	"optic-storefront/internal/db/dbtest"
	"optic-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func TestPostgres_UpsertListAndGet(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool, nil)

	for _, p := range []domain.Product{
		{ID: "1", Key: "noir-cat-eye", Name: "Noir Cat-Eye", Price: decimal.RequireFromString("89.00"), Currency: "TND", Category: "eyeglasses", IsNew: true,
			Specifications: map[string]string{"frame": "Acetate"}},
		{ID: "3", Key: "aviator-gold", Name: "Aviator Gold", Price: decimal.RequireFromString("95.00"), Currency: "TND", Category: "sunglasses"},
	} {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert %s: %v", p.ID, err)
		}
	}

	all, err := repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != "1" {
		t.Fatalf("unexpected list %+v", all)
	}

	sun, err := repo.List(ctx, domain.ProductFilter{Query: "AVI", Category: "sunglasses"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(sun) != 1 || sun[0].ID != "3" {
		t.Fatalf("unexpected filtered list %+v", sun)
	}

	fresh, err := repo.List(ctx, domain.ProductFilter{NewOnly: true})
	if err != nil {
		t.Fatalf("List new: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != "1" {
		t.Fatalf("unexpected new list %+v", fresh)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Price.Equal(decimal.NewFromInt(89)) || got.Specifications["frame"] != "Acetate" {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := repo.GetByID(ctx, "404"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpsertUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool, nil)

	p := domain.Product{ID: "7", Key: "modern-rectangle", Name: "Modern Rectangle", Price: decimal.NewFromInt(72), Currency: "TND", Category: "eyeglasses"}
	if _, err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	p.Price = decimal.NewFromInt(65)
	p.Stock = 3
	if _, err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.GetByID(ctx, "7")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Price.Equal(decimal.NewFromInt(65)) || got.Stock != 3 {
		t.Fatalf("expected updated product, got %+v", got)
	}
}
