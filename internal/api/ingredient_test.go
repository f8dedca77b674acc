package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
)

func seedTestIngredients(t *testing.T, db *gorm.DB) {
	entries := []models.Ingredient{
		{Name: "tomato", Category: "produce", Synonyms: models.JSONBStringArray{}},
		{Name: "cherry tomato", Category: "produce", Synonyms: models.JSONBStringArray{}},
		{Name: "scallion", Category: "produce", Synonyms: models.JSONBStringArray{"green onion"}},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}
}

func TestListIngredients(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	seedTestIngredients(t, db)

	w := doRequest(engine, http.MethodGet, "/api/v1/ingredients", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["ingredients"].([]interface{}), 3)

	w = doRequest(engine, http.MethodGet, "/api/v1/ingredients?skip=1&limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["ingredients"].([]interface{}), 1)
}

func TestAutocompleteIngredients(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	seedTestIngredients(t, db)

	w := doRequest(engine, http.MethodGet, "/api/v1/ingredients/autocomplete?q=tomato", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeJSON(t, w)["ingredients"].([]interface{})
	require.Len(t, results, 2)
	// Exact match ranks first.
	assert.Equal(t, "tomato", results[0].(map[string]interface{})["name"])

	// Too-short queries return nothing rather than scanning the catalog.
	w = doRequest(engine, http.MethodGet, "/api/v1/ingredients/autocomplete?q=t", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON(t, w)["ingredients"].([]interface{}), 0)
}
