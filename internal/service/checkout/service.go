// Package checkout turns a session's cart into an order message handed to the
// shop's messaging link. Nothing is recorded server-side.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"optic-storefront/internal/domain"
	"optic-storefront/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// LinkOpener hands the outbound link to whoever can open it.
type LinkOpener interface {
	Open(ctx context.Context, url string) error
}

// Notifier is told about every sent order. Failures are logged only.
type Notifier interface {
	NotifyOrder(ctx context.Context, order domain.Order) error
}

type cartStore interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Take(ctx context.Context, sessionID string, fn func(domain.Cart) error) (domain.Cart, error)
}

// LinkFunc adapts a function to LinkOpener.
type LinkFunc func(ctx context.Context, url string) error

func (f LinkFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// Settings identifies the shop on outgoing messages.
type Settings struct {
	ShopName       string
	WhatsAppNumber string
}

type Service struct {
	carts    cartStore
	opener   LinkOpener
	notifier Notifier
	settings Settings
	metrics  *metrics.Metrics
	logger   *log.Entry
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

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

func New(carts cartStore, opener LinkOpener, settings Settings, opts ...Option) *Service {
	s := &Service{
		carts:    carts,
		opener:   opener,
		settings: settings,
		logger:   log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "checkout")
	return s
}

// MissingFieldError names the first blank required field. It matches
// domain.ErrMissingField with errors.Is.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMissingField, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == domain.ErrMissingField
}

// Validate trims every field and rejects blanks. Phone and address formats are
// not checked.
func Validate(in domain.CustomerDetails) (domain.CustomerDetails, error) {
	out := domain.CustomerDetails{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	for _, f := range []struct{ name, value string }{
		{"firstName", out.FirstName},
		{"lastName", out.LastName},
		{"phone", out.Phone},
		{"address", out.Address},
	} {
		if f.value == "" {
			return out, &MissingFieldError{Field: f.name}
		}
	}
	return out, nil
}

// Summary returns the quote for the session's current cart.
func (s *Service) Summary(ctx context.Context, sessionID string) (domain.Quote, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}
	return Quote(cart.TotalPrice()), nil
}

// Submit validates the customer, composes the order message, opens the
// messaging link and clears the cart, all under the cart's session lock. An
// empty cart yields domain.ErrEmptyCart and leaves everything untouched.
func (s *Service) Submit(ctx context.Context, sessionID string, details domain.CustomerDetails) (domain.Order, error) {
	customer, err := Validate(details)
	if err != nil {
		s.metrics.RecordCheckout(metrics.OutcomeMissingField)
		return domain.Order{}, err
	}

	var order domain.Order
	_, err = s.carts.Take(ctx, sessionID, func(cart domain.Cart) error {
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		quote := Quote(cart.TotalPrice())
		message := ComposeMessage(s.settings.ShopName, customer, cart.Items, domain.NewMoney(quote.Total))
		order = domain.Order{
			ID:       uuid.NewString(),
			Customer: customer,
			Items:    cart.Items,
			Quote:    quote,
			Message:  message,
			URL:      WhatsAppURL(s.settings.WhatsAppNumber, message),
		}
		if err := s.opener.Open(ctx, order.URL); err != nil {
			return fmt.Errorf("open order link: %w", err)
		}
		if s.notifier != nil {
			if err := s.notifier.NotifyOrder(ctx, order); err != nil {
				s.logger.WithError(err).WithField("order", order.ID).Warn("order notification failed")
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		s.metrics.RecordCheckout(metrics.OutcomeEmptyCart)
		return domain.Order{}, err
	case err != nil:
		s.metrics.RecordCheckout(metrics.OutcomeError)
		return domain.Order{}, err
	}

	total, _ := order.Quote.Total.Float64()
	s.metrics.RecordCheckout(metrics.OutcomeSent)
	s.metrics.RecordOrderValue(total)
	s.logger.WithFields(log.Fields{"order": order.ID, "session": sessionID, "total": order.Quote.Total.StringFixed(2)}).Info("order sent")
	return order, nil
}

// IsMissingField reports whether err is a blank-field rejection and returns the
// field name.
func IsMissingField(err error) (string, bool) {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}
	return "", errors.Is(err, domain.ErrMissingField)
}

// ClientOpener leaves opening the link to the HTTP client, which receives the
// URL in the checkout response.
type ClientOpener struct{}

func (ClientOpener) Open(context.Context, string) error { return nil }
