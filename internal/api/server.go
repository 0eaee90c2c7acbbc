package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slideforge/layout-engine/internal/config"
	"github.com/slideforge/layout-engine/internal/logging"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer builds the router and HTTP server from cfg.
func NewServer(handler *Handler, cfg *config.Config, logger logging.Logger) *Server {
	if !cfg.Service.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	if cfg.RateLimit.RPS > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	SetupRoutes(router, handler, cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
			Handler:      router,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: logger,
	}
}

// SetupRoutes registers every route on router. When a JWT secret is
// configured the /api/v1 group requires a Bearer token; the health,
// readiness, and metrics endpoints are always open.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(handler.tel.Handler()))

	v1 := router.Group("/api/v1")
	if cfg.Auth.JWTSecret != "" {
		v1.Use(JWTMiddleware(cfg.Auth.JWTSecret))
	}

	v1.POST("/analyze", handler.Analyze)     // POST /api/v1/analyze
	v1.POST("/recommend", handler.Recommend) // POST /api/v1/recommend

	layouts := v1.Group("/layouts")
	layouts.GET("", handler.ListLayouts)   // GET /api/v1/layouts
	layouts.GET("/:id", handler.GetLayout) // GET /api/v1/layouts/:id

	v1.POST("/catalog/reload", handler.ReloadCatalog) // POST /api/v1/catalog/reload
	v1.GET("/stats", handler.GetStats)                // GET /api/v1/stats
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
