// Package server serves JSON:API fixture documents over HTTP.
//
// Each configured route exposes the fixture collection at its path and the
// individual members at path/{id}. Collection responses pass through the
// route's serializer, so clients can filter, sort and paginate fixtures with
// the usual filter[...], sort and page[...] query parameters.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/fixtures"
	"github.com/getmockd/mocksauce/pkg/hook"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/getmockd/mocksauce/pkg/logging"
	"github.com/getmockd/mocksauce/pkg/sauce"
)

// ShutdownTimeout bounds graceful shutdown in Serve.
const ShutdownTimeout = 10 * time.Second

// HealthPath is the liveness endpoint.
const HealthPath = "/__health"

// Route is a loaded route: its fixture document and serializer.
type Route struct {
	Path       string
	Document   *jsonapi.Document
	Serializer *sauce.Serializer
}

// Server is a JSON:API mock server.
type Server struct {
	addr       string
	routes     []*Route
	httpServer *http.Server
	log        *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server and pipeline logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAddress overrides the configured listen address.
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// New validates cfg, loads every route's fixtures and builds the HTTP
// handler.
func New(cfg *config.ProjectConfig, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		addr: cfg.Server.Address,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.addr == "" {
		s.addr = config.DefaultAddress
	}

	for i, rc := range cfg.Routes {
		route, err := s.loadRoute(cfg, rc)
		if err != nil {
			return nil, fmt.Errorf("routes[%d] %s: %w", i, rc.Path, err)
		}
		s.routes = append(s.routes, route)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           requestID(s.accessLog(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s, nil
}

func (s *Server) loadRoute(cfg *config.ProjectConfig, rc config.RouteConfig) (*Route, error) {
	doc, err := fixtures.Load(rc.Pattern(), cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	log := s.log.With("route", rc.Path)
	opts := []sauce.Option{sauce.WithLogger(log)}
	if rc.Hook != "" {
		h, err := hook.Where(rc.Hook, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sauce.WithHook(h))
	}

	return &Route{
		Path:       normalizePath(rc.Path),
		Document:   doc,
		Serializer: sauce.NewSerializer(cfg.SerializerConfig(rc), opts...),
	}, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Routes returns the loaded routes.
func (s *Server) Routes() []*Route {
	return s.routes
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Serve listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("serving fixtures", "address", ln.Addr().String(), "routes", len(s.routes))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// normalizePath trims a trailing slash; the root stays "/".
func normalizePath(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
