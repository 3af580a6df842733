// Package http provides the HTTP server that exposes the intake endpoint.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lawoffice/intake/internal/config"
	"github.com/lawoffice/intake/internal/database"
	"github.com/lawoffice/intake/internal/httputil"
	intakeHTTP "github.com/lawoffice/intake/internal/intake/http"
	"github.com/lawoffice/intake/internal/metrics"
)

// SubmitPath is the route the public site posts the contact form to.
const SubmitPath = "/submit"

// Server represents the HTTP server.
type Server struct {
	db       *sql.DB
	listener *listener
	router   *gin.Engine
	logger   *slog.Logger
}

// NewServer creates a new HTTP server. db may be nil, in which case readiness reports not ready.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:       db,
		listener: newListener("http server", host, port, logger),
		logger:   logger,
	}
}

// SetupRouter builds the gin engine with all routes and middleware.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	submissionHandler *intakeHTTP.SubmissionHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.NoMethod(httputil.HandleMethodNotAllowedGin)

	// Auxiliary routes follow the configured CORS policy; the intake route sets its own headers.
	aux := router.Group("")
	if corsMiddleware := auxCORS(cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		aux.Use(corsMiddleware)
	}
	aux.GET("/health", s.healthHandler)
	aux.GET("/ready", s.readinessHandler)

	submit := router.Group(SubmitPath)
	submit.OPTIONS("", submissionHandler.PreflightHandler)

	postHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		postHandlers = append(postHandlers, SubmitRateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}
	postHandlers = append(postHandlers, submissionHandler.SubmitHandler)
	submit.POST("", postHandlers...)

	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	} {
		submit.Handle(method, "", submissionHandler.MethodNotAllowedHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the router until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not initialized, call SetupRouter first")
	}
	return s.listener.serve(s.router)
}

// Shutdown stops accepting requests and waits for in-flight ones within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.listener.shutdown(ctx)
}

// healthHandler reports that the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database answers a ping.
// The intake endpoint keeps serving while not ready; submissions then rely on email delivery.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else if err := database.Ping(c.Request.Context(), s.db); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		dbStatus = "error"
	}

	status := http.StatusOK
	overall := "ready"
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
