package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"optic-storefront/internal/catalog"
	"optic-storefront/internal/config"
	"optic-storefront/internal/db"
	"optic-storefront/internal/httpserver"
	"optic-storefront/internal/logging"
	"optic-storefront/internal/metrics"
	cartrepo "optic-storefront/internal/repository/cart"
	categoryrepo "optic-storefront/internal/repository/category"
	productrepo "optic-storefront/internal/repository/product"
	cartsvc "optic-storefront/internal/service/cart"
	categorysvc "optic-storefront/internal/service/category"
	"optic-storefront/internal/service/checkout"
	productsvc "optic-storefront/internal/service/product"
	"optic-storefront/internal/service/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, fromFile := config.Load()
	logger := log.NewEntry(logging.New(cfg.LogLevel, cfg.LogFormat)).WithField("component", "api")
	if fromFile {
		logger.Info("loaded configuration from .env")
	}

	ctx := context.Background()
	pingers := map[string]httpserver.Pinger{}

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			logger.WithError(err).Fatal("connect to db")
		}
		defer pool.Close()
		pingers["postgres"] = pool
	}

	data, err := catalog.Load()
	if err != nil {
		logger.WithError(err).Fatal("load catalog")
	}

	var (
		productRepo  productrepo.Repository = productrepo.NewMemory(data.Products)
		categoryRepo categoryrepo.Repository = categoryrepo.NewMemory(data.Categories)
	)
	if cfg.CatalogSource == config.CatalogPostgres {
		productRepo = productrepo.NewPostgres(pool, logger)
		categoryRepo = categoryrepo.NewPostgres(pool)
	}

	cartRepo, closeCarts, err := newCartRepo(ctx, cfg, pool)
	if err != nil {
		logger.WithError(err).Fatal("init cart store")
	}
	defer closeCarts()
	if cfg.CartStore == config.StoreRedis {
		pingers["redis"] = cartRepo
	}

	m := metrics.New()
	cartService := cartsvc.New(cartRepo, productRepo, cartsvc.WithMetrics(m), cartsvc.WithLogger(logger))

	checkoutOpts := []checkout.Option{checkout.WithMetrics(m), checkout.WithLogger(logger)}
	if cfg.MailEnabled() {
		checkoutOpts = append(checkoutOpts, checkout.WithNotifier(checkout.NewMailer(checkout.MailSettings{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.OrderEmailFrom,
			To:       cfg.OrderEmailTo,
		}, cfg.ShopName)))
	}
	checkoutService := checkout.New(cartService, checkout.ClientOpener{}, checkout.Settings{
		ShopName:       cfg.ShopName,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}, checkoutOpts...)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Products:    productsvc.New(productRepo),
		Categories:  categorysvc.New(categoryRepo),
		Carts:       cartService,
		Checkout:    checkoutService,
		Sessions:    session.New(cfg.SessionSecret, cfg.SessionSecure, cfg.CartTTL),
		Store:       data.Store,
		Reviews:     data.Reviews,
		Metrics:     m,
		Gatherer:    prometheus.DefaultGatherer,
		Pingers:     pingers,
		CORSOrigins: cfg.CORSOrigins,
	})

	logger.WithFields(log.Fields{
		"cart_store": cfg.CartStore,
		"catalog":    cfg.CatalogSource,
		"mail":       cfg.MailEnabled(),
	}).Info("storefront configured")

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}

func newCartRepo(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (cartrepo.Repository, func(), error) {
	switch cfg.CartStore {
	case config.StoreMemory:
		return cartrepo.NewMemory(), func() {}, nil
	case config.StorePostgres:
		return cartrepo.NewPostgres(pool), func() {}, nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cartrepo.NewRedis(client, cfg.CartTTL), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
	}
}
