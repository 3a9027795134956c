// Package server exposes the graph operations and structure lookups over HTTP
// and WebSocket.
//
// Every route is a GET under the configured base path. Path segments carry the
// identifier lists and query values carry the optional parameters; both are
// passed to the request model unchanged, so validation and defaults are the
// same for every transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	smartgraph "github.com/saulfrancisco-ruizacevedo/go-smartgraph"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/config"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// GraphService runs graph operations and renders their documents.
type GraphService interface {
	Export(ctx context.Context, req request.Request) ([]byte, string, error)
}

// StructureService answers structure lookups.
type StructureService interface {
	SmilesCompound(ctx context.Context, req request.SmilesCompound) (*smartgraph.CompoundSMILES, error)
	SmilesPattern(ctx context.Context, req request.SmilesPattern) (*smartgraph.PatternSMILES, error)
}

// Server is the HTTP and WebSocket front end.
type Server struct {
	cfg        config.Server
	graph      GraphService
	structures StructureService
	logger     *zap.Logger
	gatherer   prometheus.Gatherer
	health     func(context.Context) error
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer serves the metrics of g on /metrics. Without it the route is
// not registered.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithHealthCheck makes /healthz report the result of check, usually the
// store connectivity check.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) { s.health = check }
}

// New creates a Server. cfg must have been validated.
func New(cfg config.Server, graph GraphService, structures StructureService, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		graph:      graph,
		structures: structures,
		logger:     zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The API is public and read-only.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the complete route tree wrapped in the request id, logging
// and recovery middlewares.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	base := s.cfg.BasePath

	for _, rt := range routes {
		mux.HandleFunc("GET "+base+rt.pattern(), s.handleOperation(rt))
	}
	mux.HandleFunc("GET "+base+"/ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	var handler http.Handler = mux
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server listen failed: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()), zap.String("base_path", s.cfg.BasePath))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("starting graceful shutdown of HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}
