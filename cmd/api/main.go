package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/aqustica12/diyetup-backend/internal/api/router"
	"github.com/aqustica12/diyetup-backend/internal/catalog"
	"github.com/aqustica12/diyetup-backend/internal/clients"
	appconfig "github.com/aqustica12/diyetup-backend/internal/config"
	"github.com/aqustica12/diyetup-backend/internal/observability/metrics"
	"github.com/aqustica12/diyetup-backend/internal/scheduler"
	"github.com/aqustica12/diyetup-backend/pkg/logging"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting diyetup API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: Postgres in production, in-memory for local development.
	var (
		clientRepo clients.Repository
		store      scheduler.Store
		pool       *pgxpool.Pool
	)
	if cfg.UseMemoryStore || cfg.DatabaseURL == "" {
		logger.Info("using in-memory store")
		clientRepo = clients.NewInMemoryRepository()
		store = scheduler.NewInMemoryStore(cfg.BookingAllowOverlap)
	} else {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		clientRepo = clients.NewPostgresRepository(pool)
		store = scheduler.NewPostgresStore(pool, cfg.BookingAllowOverlap)
	}

	// Package catalog, optionally cached in Redis.
	var source catalog.Source = catalog.NewStaticSource(catalog.DefaultPackages())
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, catalog cache disabled", "error", err)
		} else {
			source = catalog.NewCachedSource(source, redisClient, cfg.CatalogCacheTTL)
		}
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)
	service := scheduler.NewService(store, source, clientRepo, logger, bookingMetrics)

	routerCfg := &router.Config{
		Logger:             logger,
		ClientsHandler:     clients.NewHandler(clientRepo, logger),
		CatalogHandler:     catalog.NewHandler(source, logger),
		SchedulerHandler:   scheduler.NewHandler(service, logger),
		MetricsHandler:     promhttp.Handler(),
		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: splitOrigins(cfg.CORSAllowedOrigins),
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

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

	// Wait for interrupt signal to gracefully shutdown the server
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

func splitOrigins(raw string) []string {
	var out []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
