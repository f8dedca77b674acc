package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DraftIngredient is one ingredient reference inside an unpersisted
// recipe draft.
type DraftIngredient struct {
	Name       string
	Quantity   string
	Unit       string
	IsOptional bool
}

// RecipeDraft is a recipe parsed from provider output, prior to
// ingredient and tag resolution.
type RecipeDraft struct {
	Name               string
	Description        string
	Ingredients        []DraftIngredient
	Instructions       []string
	CookingTimeMinutes int
	Difficulty         string
	ServingSize        int
	ImageURL           string
	NutritionalInfo    map[string]interface{}
	DietaryTags        []string
}

var draftRequiredFields = []string{
	"name", "description", "ingredients", "instructions",
	"cooking_time_minutes", "difficulty", "serving_size",
}

// ParseRecipeResponse validates the provider's raw text against the
// expected {"recipes": [...]} shape and returns the drafts. The first
// violation aborts the whole parse; partial salvage happens later at
// persistence, not here.
func ParseRecipeResponse(rawText string) ([]RecipeDraft, error) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(rawText), &decoded); err != nil {
		return nil, &ParseError{RecipeIndex: -1, Reason: fmt.Sprintf("invalid JSON response: %v", err)}
	}

	root, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, &ParseError{RecipeIndex: -1, Reason: "response is not a JSON object"}
	}

	rawRecipes, ok := root["recipes"]
	if !ok {
		return nil, &ParseError{RecipeIndex: -1, Field: "recipes", Reason: "response missing 'recipes' key"}
	}

	entries, ok := rawRecipes.([]interface{})
	if !ok {
		return nil, &ParseError{RecipeIndex: -1, Field: "recipes", Reason: "'recipes' is not a list"}
	}
	if len(entries) == 0 {
		return nil, &ParseError{RecipeIndex: -1, Field: "recipes", Reason: "no recipes returned"}
	}

	drafts := make([]RecipeDraft, 0, len(entries))
	for i, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]interface{})
		if !ok {
			return nil, &ParseError{RecipeIndex: i, Reason: "recipe entry is not an object"}
		}

		for _, field := range draftRequiredFields {
			if _, present := entry[field]; !present {
				return nil, &ParseError{RecipeIndex: i, Field: field, Reason: "missing required field"}
			}
		}

		rawIngredients, ok := entry["ingredients"].([]interface{})
		if !ok {
			return nil, &ParseError{RecipeIndex: i, Field: "ingredients", Reason: "ingredients is not a list"}
		}

		ingredients := make([]DraftIngredient, 0, len(rawIngredients))
		for j, rawIng := range rawIngredients {
			ing, ok := rawIng.(map[string]interface{})
			if !ok {
				return nil, &ParseError{RecipeIndex: i, Field: fmt.Sprintf("ingredients[%d]", j), Reason: "ingredient entry is not an object"}
			}
			if _, present := ing["name"]; !present {
				return nil, &ParseError{RecipeIndex: i, Field: fmt.Sprintf("ingredients[%d].name", j), Reason: "missing 'name'"}
			}
			ingredients = append(ingredients, DraftIngredient{
				Name:       coerceString(ing["name"]),
				Quantity:   coerceString(ing["quantity"]),
				Unit:       coerceString(ing["unit"]),
				IsOptional: coerceBool(ing["is_optional"]),
			})
		}

		rawInstructions, ok := entry["instructions"].([]interface{})
		if !ok {
			return nil, &ParseError{RecipeIndex: i, Field: "instructions", Reason: "instructions is not a list"}
		}
		instructions := make([]string, 0, len(rawInstructions))
		for _, step := range rawInstructions {
			instructions = append(instructions, coerceString(step))
		}

		cookingTime, err := coerceInt(entry["cooking_time_minutes"])
		if err != nil {
			return nil, &ParseError{RecipeIndex: i, Field: "cooking_time_minutes", Reason: err.Error()}
		}
		servingSize, err := coerceInt(entry["serving_size"])
		if err != nil {
			return nil, &ParseError{RecipeIndex: i, Field: "serving_size", Reason: err.Error()}
		}

		draft := RecipeDraft{
			Name:               coerceString(entry["name"]),
			Description:        coerceString(entry["description"]),
			Ingredients:        ingredients,
			Instructions:       instructions,
			CookingTimeMinutes: cookingTime,
			Difficulty:         coerceString(entry["difficulty"]),
			ServingSize:        servingSize,
			ImageURL:           coerceString(entry["image_url"]),
		}

		if info, ok := entry["nutritional_info"].(map[string]interface{}); ok {
			draft.NutritionalInfo = info
		}
		if rawTags, ok := entry["dietary_tags"].([]interface{}); ok {
			for _, t := range rawTags {
				if tag := coerceString(t); tag != "" {
					draft.DietaryTags = append(draft.DietaryTags, tag)
				}
			}
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// coerceString renders scalar JSON values as strings. Providers
// routinely return quantities like 2 instead of "2".
func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		raw, _ := json.Marshal(s)
		return string(raw)
	}
}

func coerceBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

func coerceInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("not a number")
	}
}
