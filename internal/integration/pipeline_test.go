// Package integration exercises the full search pipeline against a real
// PostgreSQL instance. These tests skip when docker is unavailable.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/testdb"
	"github.com/pageza/fridgechef/backend/internal/types"
)

type cannedGenerator struct {
	response string
	calls    int
}

func (g *cannedGenerator) GenerateCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	g.calls++
	return g.response, nil
}

const pipelineBatch = `{
	"recipes": [
		{
			"name": "Roasted Tomato Soup",
			"description": "Slow-roasted tomatoes blended with stock.",
			"ingredients": [
				{"name": "tomato", "quantity": "8", "unit": "whole"},
				{"name": "onion", "quantity": "1", "unit": "whole"},
				{"name": "vegetable broth", "quantity": "500", "unit": "ml"},
				{"name": "basil", "quantity": "1", "unit": "bunch", "is_optional": true}
			],
			"instructions": ["Roast.", "Blend.", "Simmer."],
			"cooking_time_minutes": 50,
			"difficulty": "easy",
			"serving_size": 4,
			"dietary_tags": ["vegetarian", "vegan"]
		}
	]
}`

func newPipeline(db *gorm.DB, generator service.CompletionGenerator) *service.RecipeSearchService {
	return service.NewRecipeSearchService(
		db,
		service.NewCacheStore(db),
		generator,
		service.NewRecipePersister(db),
		service.NewRatingService(db),
	)
}

// The full miss-generate-store-hit cycle on PostgreSQL, where JSONB
// columns and the synonym query take their production code paths.
func TestSearchPipelineOnPostgres(t *testing.T) {
	db := testdb.OpenPostgres(t)
	generator := &cannedGenerator{response: pipelineBatch}
	search := newPipeline(db, generator)
	ctx := context.Background()

	req := types.RecipeSearchRequest{Ingredients: []string{"tomato", "onion"}}

	resp, err := search.Search(ctx, req, nil)
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, 1, generator.calls)

	recipe := resp.Recipes[0]
	assert.Equal(t, "Roasted Tomato Soup", recipe.Name)
	assert.ElementsMatch(t, []string{"vegetarian", "vegan"}, recipe.DietaryTags)
	// 2 of 3 required ingredients on hand; optional basil excluded.
	assert.Equal(t, 66.7, recipe.MatchPercentage)

	// Second search hits the stored batch.
	resp, err = search.Search(ctx, req, nil)
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, 1, generator.calls)
}

func TestCacheMaintenanceOnPostgres(t *testing.T) {
	db := testdb.OpenPostgres(t)
	generator := &cannedGenerator{response: pipelineBatch}
	search := newPipeline(db, generator)
	cache := service.NewCacheStore(db)
	ctx := context.Background()

	_, err := search.Search(ctx, types.RecipeSearchRequest{Ingredients: []string{"tomato"}}, nil)
	require.NoError(t, err)

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCachedRecipes)
	assert.Equal(t, int64(1), stats.ValidCachedRecipes)

	key := service.GenerateCacheKey([]string{"tomato"}, nil)
	deleted, err := cache.Invalidate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	stats, err = cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCachedRecipes)
}
