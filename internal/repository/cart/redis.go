package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"optic-storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// redisRepo stores each cart as one JSON document under cart:<sessionID>. The
// TTL is refreshed on every save, so idle carts expire.
type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

// Key returns the storage key of a session's cart.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *redisRepo) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(sessionID), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get %s: %w", Key(sessionID), err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	cart.SessionID = sessionID
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (r *redisRepo) Save(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.SessionID, err)
	}
	if err := r.client.Set(ctx, Key(cart.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", Key(cart.SessionID), err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", Key(sessionID), err)
	}
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
