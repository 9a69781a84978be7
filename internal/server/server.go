package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmirKakon/recipe-rack/config"
	"github.com/AmirKakon/recipe-rack/internal/api"
	"github.com/AmirKakon/recipe-rack/internal/database"
	"github.com/AmirKakon/recipe-rack/internal/middleware"
	"github.com/AmirKakon/recipe-rack/internal/router"
	"github.com/AmirKakon/recipe-rack/internal/service"
)

// Server represents the HTTP server
type Server struct {
	http *http.Server
	db   *gorm.DB
}

// New wires the whole application: storage, optional redis, services,
// handlers and routes.
func New(cfg *config.Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Redis is optional: without it the server runs with no rate limiting
	// and no assistant cache.
	var writeLimiter, assistantLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without rate limiting: %v", err)
		redisClient = nil
	} else {
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
		assistantLimiter = middleware.NewAssistantRateLimiter(redisClient)
	}

	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db))

	var assistantHandler *api.AssistantHandler
	assistant, err := service.NewAssistantService(cfg, redisClient)
	if err != nil {
		log.Printf("Assistant disabled: %v", err)
	} else {
		assistantHandler = api.NewAssistantHandler(assistant)
	}

	engine := router.SetupRouter(recipeHandler, assistantHandler, writeLimiter, assistantLimiter)

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}, nil
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// HealthCheck reports whether the backing store is reachable.
func (s *Server) HealthCheck(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}
