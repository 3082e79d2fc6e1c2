package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tsawler/reviewsense"
	"github.com/tsawler/reviewsense/internal/config"
	"github.com/tsawler/reviewsense/internal/logging"
	"github.com/tsawler/reviewsense/internal/metrics"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
)

// Analyzer is the inference service the handlers call.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (reviewsense.Result, error)
	AnalyzeSentences(ctx context.Context, text string) (reviewsense.Breakdown, error)
	Availability() *reviewsense.Availability
	BreakerState() string
}

// Server is the reviewsense HTTP API.
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	analyzer Analyzer

	logger      *slog.Logger
	clock       clockwork.Clock
	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics
	startTime   time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for uptime reporting.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRegistry serves and records HTTP metrics on reg. Without it /metrics
// is not mounted.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer builds the echo instance and registers every route.
func NewServer(cfg *config.Config, analyzer Analyzer, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = readTimeout
	e.Server.WriteTimeout = writeTimeout
	e.Server.IdleTimeout = idleTimeout

	s := &Server{
		echo:     e,
		config:   cfg,
		analyzer: analyzer,
		logger:   logging.NewNop(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry != nil {
		s.httpMetrics = metrics.NewHTTPMetrics(s.registry)
	}
	s.startTime = s.clock.Now()

	s.registerRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address and blocks until the server stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Starting server", "addr", s.config.Addr)
	if err := s.echo.Start(s.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
