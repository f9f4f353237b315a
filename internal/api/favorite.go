package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"flavourfusion/internal/middleware"
	"flavourfusion/internal/service"
	"flavourfusion/internal/types"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/recipes/:id/favorite", authMW, h.Toggle)
	router.GET("/recipes/:id/favorite-count", h.Count)
	router.GET("/users/favorites", authMW, h.ListUserFavorites)
}

// Toggle flips the favorite state of a recipe for the calling user.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	favorited, count, err := h.favorites.Toggle(c.Request.Context(), recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		h.logger.Error("failed to toggle favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, types.FavoriteToggleResponse{
		Favorited: favorited,
		Count:     count,
	})
}

func (h *FavoriteHandler) Count(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	count, err := h.favorites.Count(c.Request.Context(), recipeID)
	if err != nil {
		h.logger.Error("failed to count favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count favorites"})
		return
	}

	c.JSON(http.StatusOK, types.FavoriteCountResponse{Count: count})
}

func (h *FavoriteHandler) ListUserFavorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.favorites.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
