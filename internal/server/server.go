// Package server bootstraps one of the content services: configuration,
// database, cache, metrics and the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/content-platform-api/internal/api"
	"github.com/content-platform-api/internal/cache"
	"github.com/content-platform-api/internal/config"
	"github.com/content-platform-api/internal/database"
	"github.com/content-platform-api/internal/metrics"
	"github.com/content-platform-api/internal/repository"
	"github.com/content-platform-api/internal/service"
	"github.com/content-platform-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Service names
const (
	Article = "article"
	QA      = "qa"
)

// Run starts the named service and blocks until SIGINT or SIGTERM
func Run(name string) {
	migrateDown := flag.Bool("migrate-down", false, "roll back the last migration and exit")
	flag.Parse()

	// Initialize logger
	log := logger.New(name)
	log.Info().Msg("Starting " + name + " service...")

	// Load configuration
	cfg, err := config.Load(name)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *migrateDown {
		if err := db.MigrateDown(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize cache
	store, err := NewCacheStore(&cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.Cache.Driver).Dur("ttl", cfg.Cache.TTL).Msg("Cache ready")

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	// Initialize repositories and services
	repos, err := Repositories(name, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize repositories")
	}
	services := service.NewServices(repos, service.Dependencies{
		Cache:   store,
		Metrics: collector,
	}, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log, api.Options{
		Dependencies: []api.Dependency{
			{Name: "database", Ping: db.HealthCheck},
			{Name: "cache", Ping: store.Ping},
		},
		Metrics:  collector,
		Gatherer: reg,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// Repositories returns the repositories the named service serves
func Repositories(name string, db *database.DB) (*repository.Repositories, error) {
	all := repository.New(db)
	switch name {
	case Article:
		return &repository.Repositories{Article: all.Article}, nil
	case QA:
		return &repository.Repositories{Problem: all.Problem}, nil
	default:
		return nil, fmt.Errorf("unknown service %q", name)
	}
}

// NewCacheStore builds the store selected by cfg.Driver
func NewCacheStore(cfg *config.CacheConfig) (cache.Store, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis:
		return cache.NewRedisStore(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), nil
	case config.CacheDriverMemory:
		return cache.NewMemoryStore(cfg.Capacity, cfg.TTL)
	case config.CacheDriverNone:
		return cache.NewNopStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
