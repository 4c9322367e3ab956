// Package seed copies the embedded catalog into Postgres.
package seed

import (
	"context"
	"fmt"

	"optic-storefront/internal/catalog"
	"optic-storefront/internal/domain"

	log "github.com/sirupsen/logrus"
)

type productWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type categoryWriter interface {
	Upsert(ctx context.Context, c domain.Category, position int) error
}

// Result counts what Apply wrote.
type Result struct {
	Categories int
	Products   int
}

// Apply upserts every category and product of data. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, data *catalog.Data, categories categoryWriter, products productWriter, logger *log.Entry) (Result, error) {
	var res Result
	for i, c := range data.Categories {
		if err := categories.Upsert(ctx, c, i); err != nil {
			return res, fmt.Errorf("upsert category %s: %w", c.Key, err)
		}
		res.Categories++
	}
	for _, p := range data.Products {
		if _, err := products.Upsert(ctx, p); err != nil {
			return res, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		res.Products++
	}
	if logger != nil {
		logger.WithFields(log.Fields{"categories": res.Categories, "products": res.Products}).Info("catalog seeded")
	}
	return res, nil
}
