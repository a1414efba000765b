// Package server exposes the estimation engine over HTTP. It is
// presentation glue: every request is one pipeline call, the server
// holds no session state, and all rendering decisions stay with the
// caller.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/haldane/qcost/internal/application"
)

// Config controls the HTTP listener and its rate limiting.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr" validate:"required"`

	// RateLimit is the sustained estimate-requests-per-second budget.
	RateLimit rate.Limit `yaml:"rate_limit" validate:"gt=0"`

	// RateBurst allows temporary spikes above the sustained rate.
	RateBurst int `yaml:"rate_burst" validate:"min=1"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns production-ready defaults: port 8080, 50
// requests per second with a burst of 100, and a 10 second drain.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RateLimit:       50,
		RateBurst:       100,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server wires the estimation pipeline to HTTP routes.
type Server struct {
	pipeline *application.EstimationPipeline
	logger   *slog.Logger
	config   Config
	router   *gin.Engine
}

// New creates a Server with its routes registered. A nil logger uses
// slog.Default.
func New(pipeline *application.EstimationPipeline, logger *slog.Logger, config Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		pipeline: pipeline,
		logger:   logger,
		config:   config,
		router:   router,
	}
	s.registerRoutes()
	return s
}

// registerRoutes mounts the API, health, and metrics endpoints.
func (s *Server) registerRoutes() {
	limiter := rate.NewLimiter(s.config.RateLimit, s.config.RateBurst)

	api := s.router.Group("/api/v1")
	api.POST("/estimate", rateLimited(limiter), s.handleEstimate)
	api.GET("/domains", s.handleDomains)
	api.GET("/primitives", s.handlePrimitives)

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the context is cancelled, then drains in-flight
// requests within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestLogger logs one line per request with latency and status.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
