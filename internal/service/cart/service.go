// Package cart is the cart store shared by every handler: it loads the session's
// cart, applies one reducer operation, persists the result and notifies
// subscribers.
package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"optic-storefront/internal/domain"
	"optic-storefront/internal/metrics"
	cartrepo "optic-storefront/internal/repository/cart"

	log "github.com/sirupsen/logrus"
)

const lockStripes = 64

// Operation names used for logging and metrics.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpClear  = "clear"
)

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartrepo.Repository
	products productRepo
	hub      *hub
	metrics  *metrics.Metrics
	logger   *log.Entry
	now      func() time.Time
	locks    [lockStripes]sync.Mutex
}

// Option customises a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo cartrepo.Repository, products productRepo, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		products: products,
		hub:      newHub(),
		logger:   log.NewEntry(log.StandardLogger()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "cart")
	s.hub.onJoin = s.metrics.SubscriberAdded
	s.hub.onQuit = s.metrics.SubscriberRemoved
	return s
}

// Get returns the session's cart. Unknown sessions get an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// AddProduct adds quantity units of a catalog product, snapshotting its name,
// price and image into the line.
func (s *Service) AddProduct(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("product %s: %w", productID, err)
	}
	return s.AddItem(ctx, sessionID, product.CartItem(quantity), quantity)
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, OpAdd, func(c *domain.Cart) { c.AddItem(item, quantity) })
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, id string, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, OpUpdate, func(c *domain.Cart) { c.UpdateQuantity(id, quantity) })
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, id string) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, OpRemove, func(c *domain.Cart) { c.RemoveItem(id) })
}

// Clear drops the session's stored cart and publishes an empty one.
func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.reset(ctx, sessionID)
}

// Take hands the session's cart to fn while holding the session lock and
// clears it only when fn succeeds. Mutations for the same session made while fn
// runs wait and land in the emptied cart.
func (s *Service) Take(ctx context.Context, sessionID string, fn func(domain.Cart) error) (domain.Cart, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		s.metrics.RecordCartError(OpClear)
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if err := fn(cart.Clone()); err != nil {
		return domain.Cart{}, err
	}
	if _, err := s.reset(ctx, sessionID); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Subscribe streams every cart the session saves from now on. The returned func
// ends the subscription and closes the channel; calling it twice is safe.
func (s *Service) Subscribe(sessionID string) (<-chan domain.Cart, func()) {
	return s.hub.subscribe(sessionID)
}

func (s *Service) mutate(ctx context.Context, sessionID, op string, apply func(*domain.Cart)) (domain.Cart, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		s.metrics.RecordCartError(op)
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	apply(&cart)
	cart.SessionID = sessionID
	cart.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		s.metrics.RecordCartError(op)
		s.logger.WithError(err).WithFields(log.Fields{"op": op, "session": sessionID}).Error("cart save failed")
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}

	s.metrics.RecordCartOperation(op)
	s.logger.WithFields(log.Fields{"op": op, "session": sessionID, "items": cart.TotalItems()}).Debug("cart updated")
	s.hub.publish(cart)
	return cart, nil
}

// reset expects the session lock to be held.
func (s *Service) reset(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.metrics.RecordCartError(OpClear)
		s.logger.WithError(err).WithField("session", sessionID).Error("cart delete failed")
		return domain.Cart{}, fmt.Errorf("delete cart: %w", err)
	}

	cart := domain.NewCart(sessionID)
	cart.UpdatedAt = s.now().UTC()
	s.metrics.RecordCartOperation(OpClear)
	s.logger.WithField("session", sessionID).Debug("cart cleared")
	s.hub.publish(cart)
	return cart, nil
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}
