package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/config"
	"github.com/chopsmo/chopsmo-go/backend/internal/api"
	"github.com/chopsmo/chopsmo-go/backend/internal/database"
	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	db       *gorm.DB
	healthDB *database.DB
}

// New creates a new server instance with all routes registered
func New(cfg *config.Config, db *gorm.DB) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, cfg.JWTSecret)
	api.RegisterRoutes(router, db, authService, cfg)

	s := &Server{
		cfg:    cfg,
		router: router,
		db:     db,
	}

	// A dedicated plain connection backs the database health endpoint
	// so a wedged gorm pool doesn't mask database trouble.
	if healthDB, err := database.NewSQL(cfg); err != nil {
		log.Printf("Warning: health check database connection unavailable: %v", err)
	} else {
		s.healthDB = healthDB
		router.GET("/health/db", s.databaseHealth)
	}

	return s
}

func (s *Server) databaseHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.healthDB.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
