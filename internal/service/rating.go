package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
)

// RatingService owns recipe ratings: one row per (user, recipe),
// re-rating overwrites, and aggregates feed enrichment.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// RateRecipe upserts the user's rating for a recipe.
func (s *RatingService) RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, rating int) (*models.RecipeRating, error) {
	if rating < 1 || rating > 5 {
		return nil, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.RecipeRating
	err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
	switch {
	case err == nil:
		existing.Rating = rating
		if err := db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := models.RecipeRating{
			UserID:   userID,
			RecipeID: recipeID,
			Rating:   rating,
		}
		if err := db.Create(&created).Error; err != nil {
			return nil, err
		}
		return &created, nil
	default:
		return nil, err
	}
}

// DeleteRating removes the user's rating for a recipe.
func (s *RatingService) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeRating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Aggregate returns the average rating and count for a recipe. The
// average is nil when the recipe has no ratings.
func (s *RatingService) Aggregate(ctx context.Context, recipeID uuid.UUID) (*float64, int, error) {
	var result struct {
		Avg   *float64
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&models.RecipeRating{}).
		Select("AVG(rating) as avg, COUNT(id) as count").
		Where("recipe_id = ?", recipeID).
		Scan(&result).Error
	if err != nil {
		return nil, 0, err
	}
	return result.Avg, int(result.Count), nil
}

// UserRating returns the user's own rating for a recipe, nil if unset.
func (s *RatingService) UserRating(ctx context.Context, userID, recipeID uuid.UUID) (*int, error) {
	var rating models.RecipeRating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Rating, nil
}
