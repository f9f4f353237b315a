package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"flavourfusion/config"
	"flavourfusion/internal/api"
	"flavourfusion/internal/router"
	"flavourfusion/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires services, handlers and routes into a runnable server.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, logger)
	recipeService := service.NewRecipeService(db, logger)
	favoriteService := service.NewFavoriteService(db, redisClient, logger)

	authHandler := api.NewAuthHandler(authService, logger)
	recipeHandler := api.NewRecipeHandler(recipeService, logger)
	favoriteHandler := api.NewFavoriteHandler(favoriteService, logger)

	engine := router.Setup(authHandler, recipeHandler, favoriteHandler, authService, redisClient, logger)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
		logger: logger,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
