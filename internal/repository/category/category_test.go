package category

import (
	"context"
	"testing"

	"optic-storefront/internal/db/dbtest"
	"optic-storefront/internal/domain"
)

func TestPostgres_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)

	repo := NewPostgres(pool)
	if err := repo.Upsert(ctx, domain.Category{Key: "sunglasses", Name: "Lunettes de soleil"}, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, domain.Category{Key: "eyeglasses", Name: "Lunettes de vue"}, 0); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "eyeglasses" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPostgres_UpsertUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)

	repo := NewPostgres(pool)
	if err := repo.Upsert(ctx, domain.Category{Key: "lenses", Name: "Lenses"}, 0); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, domain.Category{Key: "lenses", Name: "Lentilles de contact"}, 0); err != nil {
		t.Fatalf("upsert update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Lentilles de contact" {
		t.Fatalf("expected updated name, got %+v", list)
	}
}

func TestMemory_ListReturnsCopy(t *testing.T) {
	repo := NewMemory([]domain.Category{{Key: "eyeglasses", Name: "Lunettes de vue"}})
	list, _ := repo.List(context.Background())
	list[0].Name = "changed"

	again, _ := repo.List(context.Background())
	if again[0].Name != "Lunettes de vue" {
		t.Fatalf("memory repo leaked its slice: %+v", again)
	}
}
