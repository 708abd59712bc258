// Package server provides the HTTP server lifecycle management for Hearth.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/api"
	"github.com/hearthapp/hearth/internal/metrics"
	"github.com/hearthapp/hearth/internal/storage"
)

const (
	// DefaultAddress is the default address the server listens on.
	DefaultAddress = "localhost:7432"
	// DefaultShutdownTimeout is the default timeout for graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Server manages the HTTP server lifecycle.
type Server struct {
	httpServer      *http.Server
	store           storage.Store
	logger          *zap.Logger
	listener        net.Listener
	shutdownTimeout time.Duration
	mu              sync.Mutex
	started         bool
}

// New creates a new Server serving store. The server owns store and closes
// it on shutdown.
func New(opts Options, store storage.Store, logger *zap.Logger) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	reg, m := metrics.NewRegistry()
	router := api.NewRouter(api.Deps{
		Store:    store,
		Log:      logger,
		Metrics:  m,
		Gatherer: reg,
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:           store,
		logger:          logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// Start starts the HTTP server and blocks until the server is shut down.
// It returns http.ErrServerClosed when the server is gracefully shut down.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	// Create listener first so we know the actual address (for port 0 case)
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.listener = ln
	s.started = true
	s.mu.Unlock()

	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))

	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server without interrupting active connections.
// It waits for active connections to finish or until the context is canceled.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if err := s.store.Close(); err != nil {
		s.logger.Warn("error closing store", zap.Error(err))
	}

	s.logger.Info("server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// ListenAndServe starts the server and shuts it down gracefully on SIGINT,
// SIGTERM, or when ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown requested", zap.Error(context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
