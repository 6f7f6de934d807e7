package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dealerdesk/taxengine/internal"
	"github.com/dealerdesk/taxengine/internal/handler/api"
	"github.com/dealerdesk/taxengine/internal/middleware"
	"github.com/dealerdesk/taxengine/internal/postgres"
	"github.com/dealerdesk/taxengine/internal/rates"
	"github.com/dealerdesk/taxengine/internal/router"
	"github.com/dealerdesk/taxengine/internal/rules"
	"github.com/dealerdesk/taxengine/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Metrics
	registry := prometheus.DefaultRegisterer
	httpMetrics := middleware.NewMetrics(cfg.Rates.MetricsNamespace, registry)
	rateMetrics := rates.NewMetrics(cfg.Rates.MetricsNamespace, registry)
	quoteMetrics := service.NewMetrics(cfg.Rates.MetricsNamespace, registry)

	// Rule set repository and rate resolver
	repo := rules.NewRepository()
	store := postgres.NewRateStore(pool)
	cache := rates.NewCache(cfg.Rates.CacheTTL, time.Now)
	resolver := rates.NewResolver(store, cache, repo, logger, rateMetrics, time.Now)

	// Quote service
	quotes, err := service.NewQuoteService(repo, resolver, logger, quoteMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize quote service: %w", err)
	}

	// Handlers
	quoteHandler := api.NewQuoteHandler(quotes, logger)
	ratesHandler := api.NewLocalRatesHandler(resolver, cfg.AdminToken, logger)

	// Router
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		httpMetrics.Middleware,
		router.Logger(logger),
	)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Post("/api/v1/quote", quoteHandler.Quote)
	r.Get("/api/v1/states", quoteHandler.States)
	r.Get("/api/v1/rates/local", ratesHandler.Lookup)
	r.Post("/api/v1/rates/local/bulk", ratesHandler.LookupBulk)
	r.Get("/api/v1/rates/local/breakdown", ratesHandler.Breakdown)
	r.Get("/api/v1/rates/jurisdictions/search", ratesHandler.Search)
	r.Get("/api/v1/rates/cache/stats", ratesHandler.CacheStats)
	r.Post("/api/v1/rates/cache/clear", ratesHandler.CacheClear)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting tax engine server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
