// Package server provides the HTTP surface of the signpost routing
// service: a routing-decision API over the active route table, plus
// health and metrics endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/getsignpost/signpost/internal/config"
	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/server/middleware"
)

// ginModeOnce ensures gin.SetMode is only called once to avoid race
// conditions.
var ginModeOnce sync.Once

// Server is the signpost HTTP server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	holder     *TableHolder
	logger     observability.Logger
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	cfg        config.ServerConfig
	mu         sync.Mutex
	running    bool
}

// New creates a new HTTP server over the given route table holder.
func New(
	cfg config.ServerConfig,
	holder *TableHolder,
	logger observability.Logger,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
) *Server {
	if logger == nil {
		logger = observability.NopLogger()
	}

	ginModeOnce.Do(func() {
		gin.SetMode(gin.ReleaseMode)
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:    logger,
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	if metrics != nil {
		engine.Use(middleware.Metrics(metrics))
	}

	s := &Server{
		engine:  engine,
		holder:  holder,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		cfg:     cfg,
	}

	s.registerHandlers()

	return s
}

// Engine returns the underlying gin engine, primarily for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start starts the HTTP server and blocks until the listener fails or
// the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.WriteTimeout.Duration(),
		IdleTimeout:  s.cfg.IdleTimeout.Duration(),
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("http server starting",
		observability.String("addr", addr),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.httpServer == nil {
		return nil
	}
	s.running = false

	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
