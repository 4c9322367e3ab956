package cart

import (
	"context"
	"sync"

	"optic-storefront/internal/domain"
)

// memoryRepo keeps carts in process memory. Carts vanish on restart.
type memoryRepo struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemory() Repository {
	return &memoryRepo{carts: make(map[string]domain.Cart)}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return domain.NewCart(sessionID), nil
	}
	return cart.Clone(), nil
}

func (r *memoryRepo) Save(_ context.Context, cart domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.SessionID] = cart.Clone()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}

var _ Repository = (*memoryRepo)(nil)
