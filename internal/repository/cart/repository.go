package cart

import (
	"context"

	"optic-storefront/internal/domain"
)

// Repository persists one cart per session. Load of an unknown session yields an
// empty cart, never ErrNotFound.
type Repository interface {
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
