package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"flavourfusion/internal/models"
)

const favoriteCountTTL = 5 * time.Minute

// FavoriteService handles the per-user favorite relation and its counts.
// The Redis client is optional; when nil every count goes to the database.
type FavoriteService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

func NewFavoriteService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *FavoriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoriteService{db: db, redis: redisClient, logger: logger}
}

// Toggle flips the favorite relation between user and recipe. Returns the
// new state and the authoritative count after the flip.
func (s *FavoriteService) Toggle(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return false, 0, err
	}

	var favorited bool
	var fav models.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&fav).Error
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&fav).Error; err != nil {
			return false, 0, fmt.Errorf("failed to unfavorite recipe: %w", err)
		}
		favorited = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = models.RecipeFavorite{RecipeID: recipeID, UserID: userID}
		if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
			return false, 0, fmt.Errorf("failed to favorite recipe: %w", err)
		}
		favorited = true
	default:
		return false, 0, err
	}

	s.invalidateCount(ctx, recipeID)

	count, err := s.Count(ctx, recipeID)
	if err != nil {
		return favorited, 0, err
	}
	return favorited, count, nil
}

// Count returns the number of users who favorited the recipe, reading
// through the Redis cache when available.
func (s *FavoriteService) Count(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	key := s.countKey(recipeID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.RecipeFavorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, strconv.FormatInt(count, 10), favoriteCountTTL).Err(); err != nil {
			s.logger.Warn("failed to cache favorite count", zap.Error(err))
		}
	}
	return count, nil
}

// IsFavorited reports whether the user has favorited the recipe.
func (s *FavoriteService) IsFavorited(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.RecipeFavorite{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns the recipes the user has favorited, newest favorite first.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *FavoriteService) countKey(recipeID uuid.UUID) string {
	return "favorite_count:" + recipeID.String()
}

func (s *FavoriteService) invalidateCount(ctx context.Context, recipeID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, s.countKey(recipeID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate favorite count cache", zap.Error(err))
	}
}
