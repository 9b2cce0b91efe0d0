package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsignpost/signpost/internal/config"
	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/router"
	"github.com/getsignpost/signpost/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 15 * time.Second

// application holds all application components.
type application struct {
	cfg     *config.Config
	logger  observability.Logger
	metrics *observability.Metrics
	tracer  *observability.Tracer
	holder  *server.TableHolder
	watcher *config.Watcher
	server  *server.Server
	opts    []router.Option
}

// initApplication initializes all application components.
func initApplication(cfg *config.Config, logger observability.Logger) (*application, error) {
	metrics := observability.NewMetrics(cfg.ServiceName)
	metrics.SetBuildInfo(version, gitCommit)

	tracer, err := observability.NewTracer(observability.TracerConfig{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SamplingRate: cfg.Tracing.SamplingRate,
		Enabled:      cfg.Tracing.Enabled,
	})
	if err != nil {
		return nil, err
	}

	app := &application{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		opts:    routerOptions(cfg),
	}

	routes, err := config.LoadRoutesConfig(cfg.RoutesFile)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateRoutesConfig(routes); err != nil {
		return nil, err
	}

	table, err := app.buildTable(routes)
	if err != nil {
		return nil, err
	}
	app.holder = server.NewTableHolder(table)

	watcher, err := config.NewWatcher(cfg.RoutesFile, app.onRoutesReload,
		config.WithWatcherLogger(logger),
		config.WithErrorCallback(func(err error) {
			logger.Error("route table reload failed, keeping previous table",
				observability.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	app.watcher = watcher

	app.server = server.New(cfg.Server, app.holder, logger, metrics, tracer)

	return app, nil
}

// routerOptions derives the table-independent router options from the
// service configuration.
func routerOptions(cfg *config.Config) []router.Option {
	if cfg.PatternCacheSize < 0 {
		return nil
	}
	cache := router.NewCachedCompiler(cfg.PatternCacheSize)
	return []router.Option{router.WithCompiler(cache.Compile)}
}

// buildTable constructs a router from a route table definition and
// logs a warning for every template that would be silently skipped
// during matching.
func (app *application) buildTable(routes *config.RoutesConfig) (*router.Router, error) {
	table, err := routes.BuildRouter(app.logger, app.opts...)
	if err != nil {
		return nil, err
	}

	for _, verifyErr := range table.VerifyTemplates() {
		app.logger.Warn("route declared with invalid path template, it will never match",
			observability.Error(verifyErr))
	}

	app.logger.Info("route table built",
		observability.Int("routes", table.Len()),
		observability.Bool("case_sensitive", table.CaseSensitive()),
	)

	return table, nil
}

// onRoutesReload swaps in a freshly built route table.
func (app *application) onRoutesReload(routes *config.RoutesConfig) {
	table, err := app.buildTable(routes)
	if err != nil {
		app.logger.Error("rebuilding route table failed, keeping previous table",
			observability.Error(err))
		return
	}
	app.holder.Swap(table)
}

// run starts the watcher and server, blocking until shutdown.
func run(app *application, logger observability.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.watcher.Start(ctx); err != nil {
		logger.Fatal("failed to start route table watcher", observability.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.server.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != context.Canceled {
			logger.Error("http server failed", observability.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", observability.Error(err))
	}
	if err := app.watcher.Stop(); err != nil {
		logger.Error("watcher stop failed", observability.Error(err))
	}
	if err := app.tracer.Shutdown(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", observability.Error(err))
	}

	logger.Info("signpost stopped")
}
