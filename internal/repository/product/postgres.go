package product

import (
	"context"
	"errors"
	"fmt"

	"optic-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Postgres stores the catalog in the products table.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *log.Entry
}

// attributes is the JSONB column payload for the descriptive fields.
type attributes struct {
	Images         []string          `json:"images,omitempty"`
	Rating         float64           `json:"rating,omitempty"`
	ReviewCount    int               `json:"reviewCount,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Entry) *Postgres {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Postgres{pool: pool, logger: logger.WithField("repo", "product")}
}

const selectColumns = `
SELECT id, key, name, COALESCE(description, ''), price, currency, category, image, is_new, in_stock, stock, attributes, created_at
FROM products
`

func (r *Postgres) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := selectColumns + `
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
  AND (NOT $3 OR is_new)
ORDER BY length(id), id
`
	rows, err := r.pool.Query(ctx, q, filter.Query, filter.Category, filter.NewOnly)
	if err != nil {
		r.logger.WithError(err).Error("list products")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("list products rows")
		return nil, err
	}
	r.logger.WithField("count", len(result)).Debug("listed products")
	return result, nil
}

func (r *Postgres) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, selectColumns+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("id", id).Error("get product")
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or updates a product keyed by id.
func (r *Postgres) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, key, name, description, price, currency, category, image, is_new, in_stock, stock, attributes)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    key = EXCLUDED.key,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    category = EXCLUDED.category,
    image = EXCLUDED.image,
    is_new = EXCLUDED.is_new,
    in_stock = EXCLUDED.in_stock,
    stock = EXCLUDED.stock,
    attributes = EXCLUDED.attributes
RETURNING created_at
`
	attrs := attributes{
		Images:         p.Images,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Features:       p.Features,
		Specifications: p.Specifications,
	}
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Key, p.Name, p.Description, p.Price, p.Currency, p.Category, p.Image,
		p.IsNew, p.InStock, p.Stock, attrs,
	).Scan(&p.CreatedAt)
	if err != nil {
		r.logger.WithError(err).WithField("id", p.ID).Error("upsert product")
		return nil, fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	r.logger.WithFields(log.Fields{"id": p.ID, "key": p.Key}).Debug("upserted product")
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		attrs attributes
	)
	if err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.Price, &p.Currency, &p.Category,
		&p.Image, &p.IsNew, &p.InStock, &p.Stock, &attrs, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	p.Images = attrs.Images
	p.Rating = attrs.Rating
	p.ReviewCount = attrs.ReviewCount
	p.Features = attrs.Features
	p.Specifications = attrs.Specifications
	return p, nil
}
