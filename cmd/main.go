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

	"github.com/KrishalDhungana/NBABrain/internal/adapters/http/api"
	"github.com/KrishalDhungana/NBABrain/internal/adapters/http/swagger"
	"github.com/KrishalDhungana/NBABrain/internal/adapters/repository"
	"github.com/KrishalDhungana/NBABrain/internal/adapters/source"
	app "github.com/KrishalDhungana/NBABrain/internal/app"
	"github.com/KrishalDhungana/NBABrain/internal/config"
	"github.com/KrishalDhungana/NBABrain/internal/domain/composite"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	"github.com/KrishalDhungana/NBABrain/pkg/metrics"
	"github.com/KrishalDhungana/NBABrain/pkg/worker"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Runtime collectors go on the service registry so /healthz exposes them.
	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "service failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := newHTTPServer(ctx, cfg, svc)
	errCh := make(chan error, 1)

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
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

// newService wires the source, builder and store described by cfg.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	windows, err := cfg.ParsedWindows()
	if err != nil {
		return nil, err
	}
	orders, err := cfg.MetricOrders()
	if err != nil {
		return nil, err
	}

	src, err := source.New(source.Settings{
		Kind:       cfg.Source,
		DataDir:    cfg.DataDir,
		TeamsURL:   cfg.TeamsURL,
		PlayersURL: cfg.PlayersURL,
		Timeout:    cfg.FetchTimeout(),
		Seed:       cfg.GeneratorSeed,
		Teams:      cfg.GeneratorTeams,
		Days:       cfg.GeneratorDays,
		Logger:     log.Named("source"),
	})
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}

	builder := view.NewBuilder(
		view.WithComposite(composite.New(composite.WithNeutral(cfg.NeutralRating))),
		view.WithPool(worker.NewPool(cfg.WorkerCount, worker.WithName("derive"), worker.WithLogger(log.Named("worker")))),
		view.WithWindows(windows...),
		view.WithMetricOrder(orders),
		view.WithLogger(log.Named("builder")),
	)

	return app.New(
		app.WithSource(src),
		app.WithBuilder(builder),
		app.WithStore(repository.NewSnapshotStore(repository.WithMaxLimit(cfg.MaxListLimit))),
		app.WithRefreshInterval(cfg.RefreshInterval()),
		app.WithFetchTimeout(cfg.FetchTimeout()),
		app.WithLogger(log.Named("service")),
	), nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service) *http.Server {
	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register read API routes with the service dependency.
	api.NewServer(svc, svc, cfg.MaxListLimit).Register(mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
