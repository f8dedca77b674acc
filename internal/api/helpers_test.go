package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/mocks"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/testdb"
)

// setupTestRouter builds the full handler stack on a fresh test
// database. The generation provider is a mock the test scripts.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *mocks.MockChatProvider) {
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t)

	provider := &mocks.MockChatProvider{}
	authService := service.NewAuthService(db, "test-secret")
	cacheStore := service.NewCacheStore(db)
	ratingService := service.NewRatingService(db)
	persister := service.NewRecipePersister(db)
	userService := service.NewUserService(db)
	ingredientService := service.NewIngredientService(db)
	generator := service.NewGenerationClient(provider, service.NewSlidingWindowLimiter(1000))
	searchService := service.NewRecipeSearchService(db, cacheStore, generator, persister, ratingService)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(searchService, ratingService, userService, authService, nil).RegisterRoutes(v1)
	NewIngredientHandler(ingredientService).RegisterRoutes(v1)
	NewUserHandler(userService, authService).RegisterRoutes(v1)
	NewCacheHandler(cacheStore, authService).RegisterRoutes(v1)

	return engine, db, provider
}

func doRequest(engine *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerTestUser(t *testing.T, engine *gin.Engine, email string) string {
	body := fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// generationResponse is what the scripted provider hands back for
// search tests: two recipes sharing the requested ingredients.
const generationResponse = `{
	"recipes": [
		{
			"name": "Garlic Butter Shrimp",
			"description": "Quick skillet shrimp.",
			"ingredients": [
				{"name": "shrimp", "quantity": "400", "unit": "g"},
				{"name": "garlic", "quantity": "3", "unit": "cloves"},
				{"name": "butter", "quantity": "2", "unit": "tbsp"}
			],
			"instructions": ["Melt butter.", "Cook shrimp."],
			"cooking_time_minutes": 15,
			"difficulty": "easy",
			"serving_size": 2,
			"dietary_tags": ["gluten-free"]
		},
		{
			"name": "Shrimp Fried Rice",
			"description": "Weeknight fried rice.",
			"ingredients": [
				{"name": "shrimp", "quantity": "300", "unit": "g"},
				{"name": "rice", "quantity": "2", "unit": "cups"},
				{"name": "egg", "quantity": "2", "unit": "whole"},
				{"name": "soy sauce", "quantity": "2", "unit": "tbsp"}
			],
			"instructions": ["Fry rice.", "Add shrimp."],
			"cooking_time_minutes": 20,
			"difficulty": "easy",
			"serving_size": 3,
			"dietary_tags": []
		}
	]
}`
