package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"optic-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart := domain.NewCart(sessionID)

	err := r.pool.QueryRow(ctx, `SELECT updated_at FROM carts WHERE session_id = $1`, sessionID).Scan(&cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cart, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	const linesQuery = `
SELECT product_id, name, price, image, quantity
FROM cart_lines
WHERE session_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Image, &item.Quantity); err != nil {
			return domain.Cart{}, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Save replaces the stored lines with the cart's lines in one transaction.
func (r *postgresRepo) Save(ctx context.Context, cart domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO carts (session_id, updated_at)
VALUES ($1, $2)
ON CONFLICT (session_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
`, cart.SessionID, updatedAt); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, cart.SessionID); err != nil {
		return fmt.Errorf("clear cart lines: %w", err)
	}

	if len(cart.Items) > 0 {
		batch := &pgx.Batch{}
		for pos, item := range cart.Items {
			batch.Queue(`
INSERT INTO cart_lines (session_id, position, product_id, name, price, image, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, cart.SessionID, pos, item.ID, item.Name, item.Price, item.Image, item.Quantity)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert cart lines: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
