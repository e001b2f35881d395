// Package server is the HTTP face of the calculator engine: catalog
// listing and dispatch, saved-state CRUD, the currency preference, and
// workbook export.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"calckit/internal/prefs"
	"calckit/internal/registry"
	"calckit/internal/state"
)

const defaultMaxStateBytes = 64 << 10

type Options struct {
	Addr     string
	Registry *registry.Registry
	States   state.Store
	Prefs    *prefs.Store
	Logger   *zap.Logger

	// Limiter is optional; nil disables rate limiting.
	Limiter Limiter

	MaxStateBytes   int64
	ShutdownTimeout time.Duration
}

type Server struct {
	httpServer      *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

func New(opts Options) *Server {
	maxBytes := opts.MaxStateBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxStateBytes
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}

	h := &handler{
		registry:      opts.Registry,
		states:        opts.States,
		prefs:         opts.Prefs,
		logger:        opts.Logger,
		maxStateBytes: maxBytes,
	}

	var chain http.Handler = h.routes()
	if opts.Limiter != nil {
		chain = rateLimitMiddleware(opts.Limiter, opts.Logger, chain)
	}
	chain = loggingMiddleware(opts.Logger, chain)
	chain = requestIDMiddleware(chain)

	return &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      chain,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:          opts.Logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then drains in-flight requests
// within the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("Server exited")
	return nil
}
