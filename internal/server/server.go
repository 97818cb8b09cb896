package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/service"
)

// Server is the HTTP front end of the calculator. It wraps http.Server with
// the middleware chain and graceful shutdown.
type Server struct {
	factory        engine.Factory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a Server over the engines of factory.
//
// Parameters:
//   - factory: The engine factory.
//   - cfg: The application configuration (port, default engine, digit limit).
//   - opts: Optional functional options (e.g. WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory engine.Factory, cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	if cfg.MaxDigits > 0 {
		security.MaxDigits = cfg.MaxDigits
	}
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: security,
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewCalculatorService(s.factory, service.Limits{
			MaxDigits:    s.securityConfig.MaxDigits,
			MaxFactorial: s.securityConfig.MaxFactorial,
		})
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/calculate", s.wrapWithMiddleware(s.handleCalculate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/engines", s.wrapWithMiddleware(s.handleEngines))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the root handler with every route and middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// defaultEngine is the engine used when a request names none.
func (s *Server) defaultEngine() string {
	if s.cfg.Engine == "" || s.cfg.Engine == config.AllEngines {
		return engine.DefaultEngineName
	}
	return s.cfg.Engine
}

// Start listens on the configured port until SIGINT or SIGTERM, then shuts
// down gracefully.
//
// Returns:
//   - error: An error if the server fails to start or to shut down.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.String("default_engine", s.defaultEngine()),
			logging.Int("max_digits", s.securityConfig.MaxDigits),
			logging.Int("max_factorial", s.securityConfig.MaxFactorial))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /calculate?op=<op>&a=<int>&b=<int>&engine=<name>")
		s.logger.Println("  GET /engines")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}
