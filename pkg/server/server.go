package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"meridian-hq/callisto/pkg/auth"
	"meridian-hq/callisto/pkg/config"
	"meridian-hq/callisto/pkg/export"
	"meridian-hq/callisto/pkg/server/middleware"
	"meridian-hq/callisto/pkg/study"
	"meridian-hq/callisto/pkg/telemetry/health"
	"meridian-hq/callisto/pkg/telemetry/metrics"
)

// Server is the Meridian Callisto HTTP server.
type Server struct {
	config       *config.Config
	storage      study.Storage
	authorizer   auth.Authorizer
	collector    *metrics.Collector
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server over an already-opened storage backend and
// authorizer. The collector may be nil when metrics are disabled.
func NewServer(cfg *config.Config, storage study.Storage, authorizer auth.Authorizer, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		storage:      storage,
		authorizer:   authorizer,
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"address", s.config.Server.ListenAddress,
			"storage_backend", s.config.Storage.Backend,
			"export_prefix", s.config.Export.PathPrefix,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server. In-flight exports get the
// configured shutdown timeout to finish streaming; past the deadline their
// connections are dropped and the truncated archives are invalid for the
// clients, same as any mid-download disconnect.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	exportHandler := export.NewHandler(s.storage, s.authorizer, &export.HandlerConfig{
		Product:  s.config.Export.Product,
		PageSize: s.config.Export.PageSize,
		Metrics:  s.exportMetrics(),
	})

	// The handler resolves the format from the path remainder after the
	// prefix: "/.csv", "/.json", or "/" for no format.
	prefix := strings.TrimSuffix(s.config.Export.PathPrefix, "/")
	mux.Handle(prefix+"/", http.StripPrefix(prefix, exportHandler))

	checker := health.NewChecker()
	checker.Register("storage", s.storage.Ping)
	mux.Handle("/health", checker.LivenessHandler())
	mux.Handle("/ready", checker.ReadinessHandler())

	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// exportMetrics returns the export metric recorders, or nil when metrics
// are disabled.
func (s *Server) exportMetrics() *metrics.ExportMetrics {
	if s.collector == nil || !s.config.Telemetry.Metrics.Enabled {
		return nil
	}
	return s.collector.Export()
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
