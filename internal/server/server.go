// Package server exposes the mapper, validator, dashboard and investor
// matcher over a small JSON HTTP API, so a form front-end can preview
// request bodies and KPIs without touching the disclosure API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/esgsync/internal/bridge"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/validation"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes = 4 << 20
)

// Config is the listener configuration.
type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server is the preview API.
type Server struct {
	cfg       Config
	logger    zerolog.Logger
	validator *validation.Validator
	directory *bridge.Directory
	gatherer  prometheus.Gatherer
	metrics   *Metrics
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = logging.ComponentLogger(l, "server") }
}

// WithDirectory sets the investor directory used by /v1/bridge/match.
func WithDirectory(d *bridge.Directory) Option {
	return func(s *Server) { s.directory = d }
}

// WithValidator replaces the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) { s.validator = v }
}

// WithRegistry registers the HTTP metrics with reg and serves reg's metrics
// at /metrics. Without it the default prometheus registry is used.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.gatherer = reg
		s.metrics = NewMetrics(reg)
	}
}

// New builds a Server.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{cfg: cfg, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		v, err := validation.New()
		if err != nil {
			return nil, fmt.Errorf("building validator: %w", err)
		}
		s.validator = v
	}
	if s.directory == nil {
		d, err := bridge.DefaultDirectory()
		if err != nil {
			return nil, fmt.Errorf("loading investor directory: %w", err)
		}
		s.directory = d
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
		s.metrics = NewMetrics(prometheus.DefaultRegisterer)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/map/{section}", s.handleMap)
		r.Post("/validate", s.handleValidate)
		r.Post("/dashboard", s.handleDashboard)
		r.Post("/bridge/match", s.handleBridgeMatch)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("preview API listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down preview API")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
