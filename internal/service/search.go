package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// CompletionGenerator is what Search needs from the generation layer.
type CompletionGenerator interface {
	GenerateCompletion(ctx context.Context, systemMessage, prompt string) (string, error)
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// RecipeSearchService orchestrates the cache-hit/miss flow: derive the
// fingerprint, serve from cache when possible, otherwise generate,
// parse and persist a fresh batch, then filter, rank and enrich.
type RecipeSearchService struct {
	db          *gorm.DB
	cache       *CacheStore
	generator   CompletionGenerator
	persister   *RecipePersister
	ratings     *RatingService
	numRecipes  int
	cacheMaxAge time.Duration
}

func NewRecipeSearchService(db *gorm.DB, cache *CacheStore, generator CompletionGenerator, persister *RecipePersister, ratings *RatingService) *RecipeSearchService {
	return &RecipeSearchService{
		db:          db,
		cache:       cache,
		generator:   generator,
		persister:   persister,
		ratings:     ratings,
		numRecipes:  DefaultRecipeCount,
		cacheMaxAge: DefaultCacheMaxAge,
	}
}

// MatchPercentage computes how much of a recipe's required ingredient
// set the user already has, as a percentage rounded to one decimal.
// Recipes whose ingredients are all optional fall back to the full
// ingredient list as denominator; a recipe with no ingredients is 0.0.
func MatchPercentage(recipe *models.Recipe, userIngredients []string) float64 {
	if len(recipe.RecipeIngredients) == 0 {
		return 0.0
	}

	userSet := normalizeIngredientSet(userIngredients)

	required := make([]*models.RecipeIngredient, 0, len(recipe.RecipeIngredients))
	for i := range recipe.RecipeIngredients {
		if !recipe.RecipeIngredients[i].IsOptional {
			required = append(required, &recipe.RecipeIngredients[i])
		}
	}
	if len(required) == 0 {
		for i := range recipe.RecipeIngredients {
			required = append(required, &recipe.RecipeIngredients[i])
		}
	}

	matching := 0
	for _, ri := range required {
		if _, ok := userSet[NormalizeIngredientName(ri.Ingredient.Name)]; ok {
			matching++
		}
	}

	pct := float64(matching) / float64(len(required)) * 100
	return math.Round(pct*10) / 10
}

// Search runs the full pipeline for one request.
func (s *RecipeSearchService) Search(ctx context.Context, req types.RecipeSearchRequest, userID *uuid.UUID) (*types.RecipeSearchResponse, error) {
	if len(req.Ingredients) == 0 {
		return nil, &ValidationError{Field: "ingredients", Reason: "at least one ingredient is required"}
	}
	if req.Filters != nil && req.Filters.CookingTimeRange != nil {
		tr := req.Filters.CookingTimeRange
		if tr[0] < 0 || tr[1] < tr[0] {
			return nil, &ValidationError{Field: "cooking_time_range", Reason: "bounds must satisfy 0 <= min <= max"}
		}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	normalized := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		normalized = append(normalized, NormalizeIngredientName(ing))
	}

	cacheKey := GenerateCacheKey(normalized, req.Filters)

	recipes, err := s.cache.Lookup(ctx, cacheKey, s.cacheMaxAge)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		recipes, err = s.generateAndStore(ctx, normalized, req.Filters, cacheKey)
		if err != nil {
			return nil, err
		}
	}

	filtered := applySearchFilters(recipes, req.Filters)

	// Rank the whole working set before pagination so every page sees
	// a consistent order: best match first, ties in retrieval order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return MatchPercentage(&filtered[i], normalized) > MatchPercentage(&filtered[j], normalized)
	})

	total := len(filtered)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageRecipes := filtered[start:end]

	enriched := make([]types.EnrichedRecipe, 0, len(pageRecipes))
	for i := range pageRecipes {
		er, err := s.enrichRecipe(ctx, &pageRecipes[i], normalized, userID)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, er)
	}

	log.Printf("[RecipeSearch] Returning %d recipes (page %d/%d) for key %s", len(enriched), page, totalPages, cacheKey)

	return &types.RecipeSearchResponse{
		Recipes:    enriched,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// generateAndStore produces a fresh batch for a cache miss. All
// failures surface as a single GenerationError.
func (s *RecipeSearchService) generateAndStore(ctx context.Context, normalized []string, filters *types.SearchFilters, cacheKey string) ([]models.Recipe, error) {
	log.Printf("[RecipeSearch] Cache miss, generating %d recipes for key %s", s.numRecipes, cacheKey)

	prompt := BuildRecipePrompt(normalized, filters, s.numRecipes)
	content, err := s.generator.GenerateCompletion(ctx, GenerationSystemMessage, prompt)
	if err != nil {
		var genErr *GenerationError
		if errors.As(err, &genErr) {
			return nil, err
		}
		return nil, &GenerationError{Err: err}
	}

	drafts, err := ParseRecipeResponse(content)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return s.persister.StoreBatch(ctx, drafts, cacheKey)
}

// GetRecipeDetail returns one enriched recipe and increments its view
// counter.
func (s *RecipeSearchService) GetRecipeDetail(ctx context.Context, recipeID uuid.UUID, userID *uuid.UUID) (*types.EnrichedRecipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryTags").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&recipe).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	recipe.ViewCount++

	enriched, err := s.enrichRecipe(ctx, &recipe, nil, userID)
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

// PopularRecipes returns the most viewed recipes, enriched without a
// user ingredient set.
func (s *RecipeSearchService) PopularRecipes(ctx context.Context, limit int, userID *uuid.UUID) ([]types.EnrichedRecipe, error) {
	if limit <= 0 {
		limit = 6
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryTags").
		Order("view_count DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	enriched := make([]types.EnrichedRecipe, 0, len(recipes))
	for i := range recipes {
		er, err := s.enrichRecipe(ctx, &recipes[i], nil, userID)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, er)
	}
	return enriched, nil
}

// applySearchFilters narrows the working set by cooking time (inclusive
// bounds) and dietary tag subset containment, case-insensitive.
func applySearchFilters(recipes []models.Recipe, filters *types.SearchFilters) []models.Recipe {
	if filters == nil {
		return recipes
	}

	filtered := recipes
	if filters.CookingTimeRange != nil {
		minTime, maxTime := filters.CookingTimeRange[0], filters.CookingTimeRange[1]
		kept := make([]models.Recipe, 0, len(filtered))
		for _, r := range filtered {
			if r.CookingTimeMinutes >= minTime && r.CookingTimeMinutes <= maxTime {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	if len(filters.DietaryPreferences) > 0 {
		kept := make([]models.Recipe, 0, len(filtered))
		for _, r := range filtered {
			tagSet := make(map[string]struct{}, len(r.DietaryTags))
			for _, t := range r.DietaryTags {
				tagSet[NormalizeIngredientName(t.Name)] = struct{}{}
			}
			hasAll := true
			for _, pref := range filters.DietaryPreferences {
				if _, ok := tagSet[NormalizeIngredientName(pref)]; !ok {
					hasAll = false
					break
				}
			}
			if hasAll {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	return filtered
}

// enrichRecipe decorates a recipe with availability flags, match
// percentage and rating aggregates for the requesting user.
func (s *RecipeSearchService) enrichRecipe(ctx context.Context, recipe *models.Recipe, userIngredients []string, userID *uuid.UUID) (types.EnrichedRecipe, error) {
	userSet := normalizeIngredientSet(userIngredients)

	ingredients := make([]types.RecipeIngredientView, 0, len(recipe.RecipeIngredients))
	for _, ri := range recipe.RecipeIngredients {
		_, available := userSet[NormalizeIngredientName(ri.Ingredient.Name)]
		ingredients = append(ingredients, types.RecipeIngredientView{
			IngredientID:   ri.IngredientID,
			IngredientName: ri.Ingredient.Name,
			Quantity:       ri.Quantity,
			Unit:           ri.Unit,
			IsOptional:     ri.IsOptional,
			IsAvailable:    available,
		})
	}

	tags := make([]string, 0, len(recipe.DietaryTags))
	for _, t := range recipe.DietaryTags {
		tags = append(tags, t.Name)
	}

	avgRating, totalRatings, err := s.ratings.Aggregate(ctx, recipe.ID)
	if err != nil {
		return types.EnrichedRecipe{}, err
	}

	var userRating *int
	if userID != nil {
		userRating, err = s.ratings.UserRating(ctx, *userID, recipe.ID)
		if err != nil {
			return types.EnrichedRecipe{}, err
		}
	}

	return types.EnrichedRecipe{
		ID:                 recipe.ID,
		Name:               recipe.Name,
		Description:        recipe.Description,
		Instructions:       []string(recipe.Instructions),
		CookingTimeMinutes: recipe.CookingTimeMinutes,
		Difficulty:         recipe.Difficulty,
		ServingSize:        recipe.ServingSize,
		ImageURL:           recipe.ImageURL,
		NutritionalInfo:    map[string]interface{}(recipe.NutritionalInfo),
		Ingredients:        ingredients,
		DietaryTags:        tags,
		AverageRating:      avgRating,
		TotalRatings:       totalRatings,
		UserRating:         userRating,
		MatchPercentage:    MatchPercentage(recipe, userIngredients),
		ViewCount:          recipe.ViewCount,
		CreatedAt:          recipe.CreatedAt,
	}, nil
}
