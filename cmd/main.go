package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/stylematch/internal/adapters/cache"
	"github.com/okian/stylematch/internal/adapters/http/api"
	"github.com/okian/stylematch/internal/adapters/http/site"
	"github.com/okian/stylematch/internal/adapters/http/swagger"
	"github.com/okian/stylematch/internal/adapters/repository"
	service "github.com/okian/stylematch/internal/app"
	"github.com/okian/stylematch/internal/config"
	"github.com/okian/stylematch/pkg/logger"
	"github.com/okian/stylematch/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout          = 10 * time.Second
	writeTimeout         = 30 * time.Second
	idleTimeout          = 60 * time.Second
	readHeaderTimeout    = 5 * time.Second
	shutdownTimeout      = 30 * time.Second
	catalogStatsInterval = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		// logger may not be initialized yet
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.Metrics.Namespace),
		metrics.WithSubsystem(cfg.Metrics.Subsystem),
		metrics.WithLatencyBuckets(cfg.Metrics.LatencyBuckets),
		metrics.WithConstLabels(cfg.Metrics.ConstLabels),
	)
	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithStore(store),
		service.WithMatchingConfig(cfg.Matching),
		service.WithBatchWorkers(cfg.BatchWorkers),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startCatalogStatsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, cfg),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// openStore builds the catalog store selected by cfg, wrapped in the Redis
// profile cache when one is configured.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, error) {
	opts := []repository.Option{
		repository.WithNewItemWindow(cfg.NewItemWindow),
		repository.WithLogger(log),
	}

	var store repository.Store
	switch cfg.Store.Driver {
	case repository.DriverPostgres:
		pg, err := repository.OpenPostgres(ctx, cfg.Store.DSN, repository.PoolConfig{
			MaxOpenConns: cfg.Store.MaxOpenConns,
			MaxIdleConns: cfg.Store.MaxIdleConns,
		}, opts...)
		if err != nil {
			return nil, err
		}
		store = pg
	case repository.DriverMemory, "":
		mem := repository.NewMemoryStore(opts...)
		if cfg.Store.FixturePath != "" {
			if err := repository.LoadFixture(cfg.Store.FixturePath, mem); err != nil {
				return nil, err
			}
			users, items := mem.Counts()
			log.Info(ctx, "catalog fixture loaded",
				logger.String("path", cfg.Store.FixturePath),
				logger.Int("users", users),
				logger.Int("items", items),
			)
		}
		store = mem
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnsupportedDriver, cfg.Store.Driver)
	}

	if !cfg.Redis.Enabled() {
		return store, nil
	}
	client, err := cache.NewClient(ctx, cache.ClientConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info(ctx, "profile cache enabled", logger.String("addr", cfg.Redis.Addr))
	return cache.NewProfileStore(store, client,
		cache.WithTTL(cfg.Redis.ProfileTTL),
		cache.WithLogger(log),
	), nil
}

// newHandler registers the business API, documentation and landing page
// routes.
func newHandler(ctx context.Context, svc *service.Service, cfg *config.Config) http.Handler {
	r := api.NewRouter()
	site.Register(ctx, r)
	swagger.Register(ctx, r)
	api.NewServer(svc, svc, cfg.MaxPageLimit).Register(ctx, r)
	return r
}

// startCatalogStatsUpdater refreshes the catalog size gauges.
func startCatalogStatsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(catalogStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
