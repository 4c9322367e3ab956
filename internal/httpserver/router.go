package httpserver

import (
	"context"
	"net/http"
	"time"

	"optic-storefront/internal/domain"
	"optic-storefront/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type productService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Featured(ctx context.Context) ([]domain.Product, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	AddProduct(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, id string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, id string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (domain.Cart, error)
	Subscribe(sessionID string) (<-chan domain.Cart, func())
}

type checkoutService interface {
	Summary(ctx context.Context, sessionID string) (domain.Quote, error)
	Submit(ctx context.Context, sessionID string, details domain.CustomerDetails) (domain.Order, error)
}

type sessionManager interface {
	Ensure(w http.ResponseWriter, r *http.Request) (string, error)
	Lookup(r *http.Request) (string, error)
}

// Pinger is a backend checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the routes need.
type Deps struct {
	Products   productService
	Categories categoryService
	Carts      cartService
	Checkout   checkoutService
	Sessions   sessionManager

	Store   domain.StoreInfo
	Reviews []domain.Review

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Pingers  map[string]Pinger

	CORSOrigins []string
	PingPeriod  time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Entry, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), requestMetrics(deps.Metrics))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Location"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Pingers))
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h := &handlers{deps: deps, logger: logger.WithField("layer", "http")}

	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/featured", h.featuredProducts)
	api.GET("/categories", h.listCategories)
	api.GET("/reviews", h.listReviews)
	api.GET("/store", h.storeInfo)

	cart := api.Group("/cart", sessionMiddleware(deps.Sessions, h.logger))
	cart.GET("", h.getCart)
	cart.POST("/items", h.addItem)
	cart.PATCH("/items/:id", h.updateItem)
	cart.DELETE("/items/:id", h.removeItem)
	cart.DELETE("", h.clearCart)
	cart.GET("/summary", h.cartSummary)
	// the upgrade response cannot carry a new cookie
	api.GET("/cart/ws", existingSession(deps.Sessions), h.cartStream)

	checkoutGroup := api.Group("/checkout")
	checkoutGroup.POST("", sessionMiddleware(deps.Sessions, h.logger), h.submitCheckout)
	checkoutGroup.GET("/qr", h.checkoutQR)

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Entry
}
