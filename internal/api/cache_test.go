package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCacheEndpointsRequireAuth(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/cache/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCacheStatsAndInvalidate(t *testing.T) {
	engine, _, provider := setupTestRouter(t)
	provider.On("CreateChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(generationResponse, nil)
	token := registerTestUser(t, engine, "admin@example.com")

	w := doRequest(engine, http.MethodPost, "/api/v1/recipes/search",
		`{"ingredients":["shrimp","garlic","butter"]}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/cache/stats", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeJSON(t, w)
	assert.Equal(t, float64(2), stats["total_cached_recipes"])
	assert.Equal(t, float64(2), stats["valid_cached_recipes"])
	assert.Equal(t, float64(1), stats["unique_cache_keys"])

	// Nothing is a week old yet, so the sweep removes nothing.
	w = doRequest(engine, http.MethodDelete, "/api/v1/cache/expired", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeJSON(t, w)["deleted"])
}

func TestCacheInvalidateForcesRegeneration(t *testing.T) {
	engine, db, provider := setupTestRouter(t)
	provider.On("CreateChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(generationResponse, nil)
	token := registerTestUser(t, engine, "admin@example.com")

	body := `{"ingredients":["shrimp","garlic","butter"]}`
	w := doRequest(engine, http.MethodPost, "/api/v1/recipes/search", body, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cacheKey string
	require.NoError(t, db.Raw(
		"SELECT cache_key FROM recipes WHERE cache_key IS NOT NULL LIMIT 1").Scan(&cacheKey).Error)
	require.NotEmpty(t, cacheKey)

	w = doRequest(engine, http.MethodDelete, "/api/v1/cache/"+cacheKey, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeJSON(t, w)["deleted"])

	// The next identical search has to generate again.
	w = doRequest(engine, http.MethodPost, "/api/v1/recipes/search", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	provider.AssertNumberOfCalls(t, "CreateChatCompletion", 2)
}
