package category

import (
	"context"

	"optic-storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps categories in the categories table, ordered by position.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (r *Postgres) Upsert(ctx context.Context, c domain.Category, position int) error {
	const q = `
INSERT INTO categories (key, name, position)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET
    name = EXCLUDED.name,
    position = EXCLUDED.position
`
	_, err := r.pool.Exec(ctx, q, c.Key, c.Name, position)
	return err
}

func (r *Postgres) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT key, name
FROM categories
ORDER BY position ASC, key ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Key, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
