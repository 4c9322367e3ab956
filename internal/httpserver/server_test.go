package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"optic-storefront/internal/catalog"
	"optic-storefront/internal/metrics"
	cartrepo "optic-storefront/internal/repository/cart"
	categoryrepo "optic-storefront/internal/repository/category"
	productrepo "optic-storefront/internal/repository/product"
	cartsvc "optic-storefront/internal/service/cart"
	categorysvc "optic-storefront/internal/service/category"
	"optic-storefront/internal/service/checkout"
	productsvc "optic-storefront/internal/service/product"
	"optic-storefront/internal/service/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	handler http.Handler
	carts   *cartsvc.Service
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, pingers map[string]Pinger) *testServer {
	t.Helper()
	return newTestServerWithCarts(t, pingers, nil)
}

// newTestServerWithCarts lets a test decorate the cart service the routes see.
func newTestServerWithCarts(t *testing.T, pingers map[string]Pinger, wrap func(*cartsvc.Service) cartService) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	data, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(registry)
	logger, _ := test.NewNullLogger()
	entry := log.NewEntry(logger)

	products := productrepo.NewMemory(data.Products)
	carts := cartsvc.New(cartrepo.NewMemory(), products, cartsvc.WithMetrics(m), cartsvc.WithLogger(entry))
	checkoutSvc := checkout.New(carts, checkout.ClientOpener{}, checkout.Settings{ShopName: "SPECTRO VISION +", WhatsAppNumber: "21650577392"},
		checkout.WithMetrics(m), checkout.WithLogger(entry))

	var routeCarts cartService = carts
	if wrap != nil {
		routeCarts = wrap(carts)
	}

	srv := New(":0", entry, Deps{
		Products:    productsvc.New(products),
		Categories:  categorysvc.New(categoryrepo.NewMemory(data.Categories)),
		Carts:       routeCarts,
		Checkout:    checkoutSvc,
		Sessions:    session.New("test-secret", false, time.Hour),
		Store:       data.Store,
		Reviews:     data.Reviews,
		Metrics:     m,
		Gatherer:    registry,
		Pingers:     pingers,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	return &testServer{handler: srv.Handler(), carts: carts}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			s.cookie = c
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, map[string]Pinger{"redis": pingerFunc(func(context.Context) error { return nil })})
	if rec := srv.do(t, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz status %d", rec.Code)
	}

	down := newTestServer(t, map[string]Pinger{"postgres": pingerFunc(func(context.Context) error { return errors.New("refused") })})
	rec := down.do(t, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "postgres") {
		t.Fatalf("expected failing backend named, got %s", rec.Body.String())
	}
}

func TestProductRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/products?category=sunglasses&q=AVIATOR", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	list := decode[struct {
		Products []productResponse `json:"products"`
	}](t, rec)
	if len(list.Products) != 2 {
		t.Fatalf("expected 2 aviators, got %+v", list.Products)
	}
	for _, p := range list.Products {
		if p.Category != "sunglasses" {
			t.Fatalf("unexpected category %s", p.Category)
		}
	}

	rec = srv.do(t, http.MethodGet, "/api/products/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d", rec.Code)
	}
	if p := decode[productResponse](t, rec); p.Price != "89.00" || p.Name != "Noir Cat-Eye" {
		t.Fatalf("unexpected product %+v", p)
	}

	if rec := srv.do(t, http.MethodGet, "/api/products/99", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/products?new=maybe", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad flag, got %d", rec.Code)
	}
}

func TestStaticContentRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	cats := decode[struct {
		Categories []struct{ Key string } `json:"categories"`
	}](t, srv.do(t, http.MethodGet, "/api/categories", nil))
	if len(cats.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %+v", cats)
	}

	reviews := decode[reviewsResponse](t, srv.do(t, http.MethodGet, "/api/reviews", nil))
	if reviews.Count == 0 || reviews.AverageRating <= 0 {
		t.Fatalf("unexpected reviews %+v", reviews)
	}

	featured := decode[struct {
		Products []productResponse `json:"products"`
	}](t, srv.do(t, http.MethodGet, "/api/featured", nil))
	if len(featured.Products) != 4 {
		t.Fatalf("expected 4 featured, got %d", len(featured.Products))
	}

	rec := srv.do(t, http.MethodGet, "/api/store", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "BENNANI OPTIC") {
		t.Fatalf("unexpected store response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d: %s", rec.Code, rec.Body.String())
	}
	if srv.cookie == nil {
		t.Fatalf("expected session cookie")
	}
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "2"})

	cart := decode[cartResponse](t, srv.do(t, http.MethodGet, "/api/cart", nil))
	if cart.TotalItems != 3 || cart.TotalPrice != "253.00" {
		t.Fatalf("unexpected cart %+v", cart)
	}

	cart = decode[cartResponse](t, srv.do(t, http.MethodPatch, "/api/cart/items/1", map[string]any{"quantity": 0}))
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", cart.Items[0].Quantity)
	}

	cart = decode[cartResponse](t, srv.do(t, http.MethodDelete, "/api/cart/items/42", nil))
	if len(cart.Items) != 2 {
		t.Fatalf("remove of unknown id changed cart: %+v", cart)
	}

	summary := decode[quoteResponse](t, srv.do(t, http.MethodGet, "/api/cart/summary", nil))
	if summary.Subtotal != "164.00" || summary.Shipping != "0.00" || summary.Total != "180.40" {
		t.Fatalf("unexpected summary %+v", summary)
	}

	cart = decode[cartResponse](t, srv.do(t, http.MethodDelete, "/api/cart", nil))
	if len(cart.Items) != 0 || cart.TotalPrice != "0.00" {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestCartValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	if rec := srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"quantity": 1}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without productId, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "404"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPatch, "/api/cart/items/1", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without quantity, got %d", rec.Code)
	}
}

func TestCartsArePerSession(t *testing.T) {
	first := newTestServer(t, nil)
	first.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})

	second := &testServer{handler: first.handler}
	cart := decode[cartResponse](t, second.do(t, http.MethodGet, "/api/cart", nil))
	if len(cart.Items) != 0 {
		t.Fatalf("new session saw another session's cart: %+v", cart)
	}
}

func TestCheckoutFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	customer := map[string]string{"firstName": "Amira", "lastName": "Ben Salah", "phone": "50123456", "address": "Tunis"}

	rec := srv.do(t, http.MethodPost, "/api/checkout", customer)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/cart" {
		t.Fatalf("expected redirect to /cart, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 2})
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "2", "quantity": 1})

	rec = srv.do(t, http.MethodPost, "/api/checkout", map[string]string{"firstName": "Amira", "lastName": " ", "phone": "1", "address": "x"})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "lastName") {
		t.Fatalf("expected 400 naming lastName, got %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/checkout", customer)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout status %d: %s", rec.Code, rec.Body.String())
	}
	order := decode[orderResponse](t, rec)
	if !strings.HasPrefix(order.URL, "https://wa.me/21650577392?text=") {
		t.Fatalf("unexpected url %s", order.URL)
	}
	if order.Quote.Total != "278.30" || !strings.Contains(order.Message, "- 2 x Noir Cat-Eye (TND 89.00 each)") {
		t.Fatalf("unexpected order %+v", order)
	}

	cart := decode[cartResponse](t, srv.do(t, http.MethodGet, "/api/cart", nil))
	if len(cart.Items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", cart)
	}

	rec = srv.do(t, http.MethodGet, "/api/checkout/qr?url="+url.QueryEscape(order.URL), nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr status %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec := srv.do(t, http.MethodGet, "/api/checkout/qr?url=https://example.com", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign link, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodGet, "/api/cart", nil)

	rec := srv.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `storefront_http_requests_total{method="GET",route="/api/cart",status="200"} 1`) {
		t.Fatalf("request counter missing:\n%s", rec.Body.String())
	}
}
