package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridgechef/backend/internal/service"
)

const validResponse = `{
	"recipes": [
		{
			"name": "Tomato Basil Pasta",
			"description": "Quick weeknight pasta.",
			"ingredients": [
				{"name": "pasta", "quantity": "200", "unit": "g"},
				{"name": "tomato", "quantity": 3, "unit": "whole"},
				{"name": "parmesan", "quantity": "30", "unit": "g", "is_optional": true}
			],
			"instructions": ["Boil pasta.", "Simmer tomatoes.", "Combine."],
			"cooking_time_minutes": 25,
			"difficulty": "easy",
			"serving_size": 2,
			"dietary_tags": ["vegetarian"],
			"nutritional_info": {"calories": 520}
		}
	]
}`

func TestParseRecipeResponseValid(t *testing.T) {
	drafts, err := service.ParseRecipeResponse(validResponse)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.Equal(t, "Tomato Basil Pasta", draft.Name)
	assert.Equal(t, 25, draft.CookingTimeMinutes)
	assert.Equal(t, 2, draft.ServingSize)
	assert.Len(t, draft.Instructions, 3)
	assert.Equal(t, []string{"vegetarian"}, draft.DietaryTags)
	assert.Equal(t, 520.0, draft.NutritionalInfo["calories"])

	require.Len(t, draft.Ingredients, 3)
	// Numeric quantity is coerced to its string form.
	assert.Equal(t, "3", draft.Ingredients[1].Quantity)
	assert.False(t, draft.Ingredients[0].IsOptional)
	assert.True(t, draft.Ingredients[2].IsOptional)
}

func TestParseRecipeResponseFailures(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantIndex int
		wantField string
	}{
		{"invalid json", `not json`, -1, ""},
		{"not an object", `[1, 2]`, -1, ""},
		{"missing recipes key", `{"results": []}`, -1, "recipes"},
		{"recipes not a list", `{"recipes": {"a": 1}}`, -1, "recipes"},
		{"empty recipes", `{"recipes": []}`, -1, "recipes"},
		{"entry not an object", `{"recipes": ["nope"]}`, 0, ""},
		{
			"missing required field",
			`{"recipes": [{"name": "x", "description": "y", "ingredients": [], "instructions": [],
				"cooking_time_minutes": 5, "difficulty": "easy"}]}`,
			0, "serving_size",
		},
		{
			"ingredients not a list",
			`{"recipes": [{"name": "x", "description": "y", "ingredients": "pasta", "instructions": [],
				"cooking_time_minutes": 5, "difficulty": "easy", "serving_size": 1}]}`,
			0, "ingredients",
		},
		{
			"ingredient missing name",
			`{"recipes": [{"name": "x", "description": "y",
				"ingredients": [{"quantity": "1"}], "instructions": [],
				"cooking_time_minutes": 5, "difficulty": "easy", "serving_size": 1}]}`,
			0, "ingredients[0].name",
		},
		{
			"instructions not a list",
			`{"recipes": [{"name": "x", "description": "y", "ingredients": [], "instructions": "stir",
				"cooking_time_minutes": 5, "difficulty": "easy", "serving_size": 1}]}`,
			0, "instructions",
		},
		{
			"cooking time not numeric",
			`{"recipes": [{"name": "x", "description": "y", "ingredients": [], "instructions": [],
				"cooking_time_minutes": {"mins": 5}, "difficulty": "easy", "serving_size": 1}]}`,
			0, "cooking_time_minutes",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.ParseRecipeResponse(tc.input)
			require.Error(t, err)

			var parseErr *service.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.wantIndex, parseErr.RecipeIndex)
			assert.Equal(t, tc.wantField, parseErr.Field)
		})
	}
}

func TestParseRecipeResponseNumericStrings(t *testing.T) {
	input := `{
		"recipes": [{
			"name": "Soup", "description": "Warm.",
			"ingredients": [{"name": "carrot"}],
			"instructions": ["Simmer."],
			"cooking_time_minutes": "40",
			"difficulty": "easy",
			"serving_size": "4"
		}]
	}`
	drafts, err := service.ParseRecipeResponse(input)
	require.NoError(t, err)
	assert.Equal(t, 40, drafts[0].CookingTimeMinutes)
	assert.Equal(t, 4, drafts[0].ServingSize)
}

func TestParseRecipeResponseSecondEntryIndexed(t *testing.T) {
	input := `{
		"recipes": [
			{"name": "ok", "description": "d", "ingredients": [], "instructions": [],
				"cooking_time_minutes": 5, "difficulty": "easy", "serving_size": 1},
			{"name": "broken", "description": "d", "ingredients": [], "instructions": [],
				"difficulty": "easy", "serving_size": 1}
		]
	}`
	_, err := service.ParseRecipeResponse(input)
	require.Error(t, err)

	var parseErr *service.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.RecipeIndex)
	assert.Equal(t, "cooking_time_minutes", parseErr.Field)
}
