package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/intelligent-lrt/transit-assistant/internal/api/router"
	"github.com/intelligent-lrt/transit-assistant/internal/assistant"
	appconfig "github.com/intelligent-lrt/transit-assistant/internal/config"
	"github.com/intelligent-lrt/transit-assistant/internal/httpapi"
	"github.com/intelligent-lrt/transit-assistant/internal/observability/metrics"
	"github.com/intelligent-lrt/transit-assistant/internal/store"
	"github.com/intelligent-lrt/transit-assistant/internal/ticketing"
	"github.com/intelligent-lrt/transit-assistant/internal/transit"
	"github.com/intelligent-lrt/transit-assistant/internal/webchat"
	"github.com/intelligent-lrt/transit-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting transit-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Document store: Redis when configured, in-memory otherwise.
	var docs store.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		docs = store.NewRedisStore(client, nil)
		logger.Info("using redis document store", "addr", cfg.RedisAddr)
	} else {
		docs = store.NewMemoryStore()
		logger.Info("using in-memory document store")
	}

	// Ticket store: Postgres when configured, in-memory otherwise.
	var tickets ticketing.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := ticketing.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure ticket schema", "error", err)
			os.Exit(1)
		}
		tickets = pg
		logger.Info("using postgres ticket store")
	} else {
		tickets = ticketing.NewMemoryStore()
		logger.Info("using in-memory ticket store")
	}

	registry := prometheus.NewRegistry()
	assistantMetrics := metrics.NewAssistantMetrics(registry)

	// The assistant talks to the transit API over HTTP. By default that is
	// this same process, so the wire behavior matches a split deployment.
	provider := transit.NewClient(cfg.BackendBaseURL,
		transit.WithTimeouts(cfg.FetchTimeout, cfg.ProbeTimeout))
	submitter := ticketing.NewClient(cfg.BackendBaseURL, cfg.BookingTimeout, nil)

	chat := webchat.NewHandler(func() *assistant.Assistant {
		return assistant.New(assistant.Options{
			Provider:  provider,
			Submitter: submitter,
			Logger:    logger,
			Metrics:   assistantMetrics,
			CacheTTL:  cfg.CacheTTL,
			SeatPrice: cfg.SeatPrice,
		})
	}, logger)

	apiHandler := httpapi.NewHandler(docs, tickets, logger)
	authHandler := httpapi.NewAuthHandler(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminJWTSecret, logger)

	r := router.New(&router.Config{
		Logger:          logger,
		API:             apiHandler,
		Auth:            authHandler,
		Webchat:         chat,
		AdminAuthSecret: cfg.AdminJWTSecret,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
