// Package http wires the journal API: router, middleware, health endpoints
// and the HTTP server lifecycle.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/journal/internal/config"
	journalHTTP "github.com/allisson/journal/internal/journal/http"
	"github.com/allisson/journal/internal/metrics"
	sessionHTTP "github.com/allisson/journal/internal/session/http"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

const readinessTimeout = 2 * time.Second

// Server is the journal API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Session *sessionHTTP.SessionHandler
	Entries *journalHTTP.EntryHandler
	Folders *journalHTTP.FolderHandler
	Goals   *journalHTTP.GoalHandler
	// KeyGuard receives activity from successful journal requests.
	KeyGuard sessionUseCase.KeyGuard
}

// NewServer creates a server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. ctx bounds background work started by
// middleware such as the unlock rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	session := v1.Group("/session")
	{
		unlock := []gin.HandlerFunc{handlers.Session.UnlockHandler}
		if cfg.RateLimitUnlockEnabled {
			limiter := sessionHTTP.UnlockRateLimitMiddleware(
				ctx,
				cfg.RateLimitUnlockRequestsPerSec,
				cfg.RateLimitUnlockBurst,
				s.logger,
			)
			unlock = append([]gin.HandlerFunc{limiter}, unlock...)
		}
		session.POST("/unlock", unlock...)
		session.POST("/lock", handlers.Session.LockHandler)
		session.POST("/end", handlers.Session.EndHandler)
		session.POST("/activity", handlers.Session.ActivityHandler)
		session.GET("", handlers.Session.GetHandler)
		session.PUT("/auto-lock", handlers.Session.AutoLockHandler)
	}

	journal := v1.Group("")
	journal.Use(sessionHTTP.ActivityMiddleware(handlers.KeyGuard))
	{
		journal.POST("/entries", handlers.Entries.CreateHandler)
		journal.GET("/entries", handlers.Entries.ListHandler)
		journal.GET("/entries/:id/thread", handlers.Entries.GetThreadHandler)
		journal.DELETE("/entries/:id", handlers.Entries.DeleteHandler)

		journal.POST("/folders", handlers.Folders.CreateHandler)
		journal.GET("/folders", handlers.Folders.ListHandler)
		journal.GET("/folders/:id", handlers.Folders.GetHandler)

		journal.POST("/goals", handlers.Goals.CreateHandler)
		journal.GET("/goals", handlers.Goals.ListHandler)
		journal.GET("/goals/:id", handlers.Goals.GetHandler)
	}

	s.router = router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}

// Start blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
