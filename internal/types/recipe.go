package types

import (
	"time"

	"github.com/google/uuid"
)

// SearchFilters narrows a recipe search. Both fields are optional;
// CookingTimeRange is (min, max) minutes, inclusive on both ends.
type SearchFilters struct {
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	CookingTimeRange   *[2]int  `json:"cooking_time_range,omitempty"`
}

// RecipeSearchRequest is the inbound search payload.
type RecipeSearchRequest struct {
	Ingredients []string       `json:"ingredients" binding:"required"`
	Filters     *SearchFilters `json:"filters,omitempty"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
}

// RecipeIngredientView is one ingredient line of an enriched recipe,
// flagged with whether the searching user already has it.
type RecipeIngredientView struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       string    `json:"quantity"`
	Unit           string    `json:"unit"`
	IsOptional     bool      `json:"is_optional"`
	IsAvailable    bool      `json:"is_available"`
}

// EnrichedRecipe is a recipe decorated with match percentage,
// availability flags and rating aggregates for a particular request.
type EnrichedRecipe struct {
	ID                 uuid.UUID              `json:"id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	Instructions       []string               `json:"instructions"`
	CookingTimeMinutes int                    `json:"cooking_time_minutes"`
	Difficulty         string                 `json:"difficulty"`
	ServingSize        int                    `json:"serving_size"`
	ImageURL           string                 `json:"image_url,omitempty"`
	NutritionalInfo    map[string]interface{} `json:"nutritional_info,omitempty"`
	Ingredients        []RecipeIngredientView `json:"ingredients"`
	DietaryTags        []string               `json:"dietary_tags"`
	AverageRating      *float64               `json:"average_rating"`
	TotalRatings       int                    `json:"total_ratings"`
	UserRating         *int                   `json:"user_rating,omitempty"`
	MatchPercentage    float64                `json:"match_percentage"`
	ViewCount          int                    `json:"view_count"`
	CreatedAt          time.Time              `json:"created_at"`
}

// RecipeSearchResponse is the paginated search result.
type RecipeSearchResponse struct {
	Recipes    []EnrichedRecipe `json:"recipes"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// CacheStats reports the state of the generated-recipe cache.
type CacheStats struct {
	TotalCachedRecipes   int64 `json:"total_cached_recipes"`
	ValidCachedRecipes   int64 `json:"valid_cached_recipes"`
	ExpiredCachedRecipes int64 `json:"expired_cached_recipes"`
	UniqueCacheKeys      int64 `json:"unique_cache_keys"`
}
