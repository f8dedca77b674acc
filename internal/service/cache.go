package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// DefaultCacheMaxAge is how long generated recipes stay servable from
// the cache before a search falls through to generation again.
const DefaultCacheMaxAge = 7 * 24 * time.Hour

// CacheStore looks up, invalidates and expires generated recipes by
// their cache fingerprint. Backed by the recipes table; a cache miss
// and an expired entry are indistinguishable to callers.
type CacheStore struct {
	db *gorm.DB
}

func NewCacheStore(db *gorm.DB) *CacheStore {
	return &CacheStore{db: db}
}

// Lookup returns all recipes stored under cacheKey that are newer than
// maxAge. An empty slice means miss.
func (s *CacheStore) Lookup(ctx context.Context, cacheKey string, maxAge time.Duration) ([]models.Recipe, error) {
	threshold := time.Now().Add(-maxAge)

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryTags").
		Where("cache_key = ? AND created_at >= ?", cacheKey, threshold).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	if len(recipes) > 0 {
		log.Printf("[CacheStore] Cache hit: %d recipes for key %s", len(recipes), cacheKey)
	} else {
		log.Printf("[CacheStore] Cache miss for key %s", cacheKey)
	}
	return recipes, nil
}

// Invalidate deletes every recipe stored under cacheKey, regardless of
// age, and returns the number removed.
func (s *CacheStore) Invalidate(ctx context.Context, cacheKey string) (int, error) {
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Recipe{}).Where("cache_key = ?", cacheKey).Pluck("id", &ids).Error; err != nil {
			return err
		}
		count = len(ids)
		if count == 0 {
			return nil
		}
		return deleteRecipesByID(tx, ids)
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[CacheStore] Invalidated %d recipes for key %s", count, cacheKey)
	return count, nil
}

// SweepExpired deletes all cached recipes older than maxAge. Meant for
// explicit maintenance, not the request path.
func (s *CacheStore) SweepExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	threshold := time.Now().Add(-maxAge)

	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Recipe{}).
			Where("cache_key IS NOT NULL AND created_at < ?", threshold).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		count = len(ids)
		if count == 0 {
			return nil
		}
		return deleteRecipesByID(tx, ids)
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[CacheStore] Swept %d expired cached recipes", count)
	return count, nil
}

// Stats reports cache occupancy using the default max age.
func (s *CacheStore) Stats(ctx context.Context) (*types.CacheStats, error) {
	db := s.db.WithContext(ctx)
	threshold := time.Now().Add(-DefaultCacheMaxAge)

	stats := &types.CacheStats{}
	if err := db.Model(&models.Recipe{}).Where("cache_key IS NOT NULL").Count(&stats.TotalCachedRecipes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Recipe{}).
		Where("cache_key IS NOT NULL AND created_at >= ?", threshold).
		Count(&stats.ValidCachedRecipes).Error; err != nil {
		return nil, err
	}
	stats.ExpiredCachedRecipes = stats.TotalCachedRecipes - stats.ValidCachedRecipes

	if err := db.Model(&models.Recipe{}).
		Where("cache_key IS NOT NULL").
		Distinct("cache_key").
		Count(&stats.UniqueCacheKeys).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// deleteRecipesByID removes recipes and every row they own. Association
// rows are deleted explicitly so behavior does not depend on foreign
// key enforcement in the underlying database.
func deleteRecipesByID(tx *gorm.DB, ids []string) error {
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM recipe_dietary_tags WHERE recipe_id IN ?", ids).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.UserFavorite{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.RecipeRating{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Recipe{}).Error
}
