package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"flavourfusion/internal/api"
	"flavourfusion/internal/middleware"
)

// Setup configures the application routes.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	favoriteHandler *api.FavoriteHandler,
	validator middleware.TokenValidator,
	redisClient *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.Auth(validator)

	var mutateMW []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewMutationRateLimiter(redisClient)
		mutateMW = append(mutateMW, limiter.Middleware())
	}

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup, authMW, mutateMW...)
	favoriteHandler.RegisterRoutes(apiGroup, authMW)

	return router
}
