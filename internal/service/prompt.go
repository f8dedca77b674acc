package service

import (
	"fmt"
	"strings"

	"github.com/pageza/fridgechef/backend/internal/types"
)

// GenerationSystemMessage sets the provider's role for recipe generation.
const GenerationSystemMessage = "You are a professional chef assistant. Generate detailed recipes in JSON format."

// DefaultRecipeCount is how many recipes one generation run asks for.
const DefaultRecipeCount = 5

// BuildRecipePrompt renders the generation instruction block for a set
// of ingredients and optional filters. Deterministic for equal inputs.
func BuildRecipePrompt(ingredients []string, filters *types.SearchFilters, numRecipes int) string {
	ingredientsStr := strings.Join(ingredients, ", ")

	dietaryFilter := ""
	timeFilter := ""
	if filters != nil {
		if len(filters.DietaryPreferences) > 0 {
			dietaryFilter = fmt.Sprintf("\n\nDIETARY REQUIREMENTS: All recipes must be %s.",
				strings.Join(filters.DietaryPreferences, ", "))
		}
		if filters.CookingTimeRange != nil {
			timeFilter = fmt.Sprintf("\n\nCOOKING TIME CONSTRAINT: Recipes should take between %d and %d minutes to prepare and cook.",
				filters.CookingTimeRange[0], filters.CookingTimeRange[1])
		}
	}

	return fmt.Sprintf(`Generate %d diverse and delicious recipes using these available ingredients: %s.
%s%s

INSTRUCTIONS:
1. Prioritize recipes that use as many of the provided ingredients as possible
2. Each recipe should be practical and achievable for home cooks
3. Include a variety of cuisines and cooking styles
4. Recipes can include additional common ingredients not in the list (like salt, pepper, oil, water)
5. Clearly specify all ingredients needed, including those not in the available list

For each recipe, provide the following information in JSON format:

{
  "recipes": [
    {
      "name": "Recipe Name",
      "description": "A brief 1-2 sentence description of the dish",
      "ingredients": [
        {
          "name": "ingredient name",
          "quantity": "amount (e.g., 2, 1/2, 1.5)",
          "unit": "measurement unit (e.g., cup, tablespoon, piece, gram)",
          "is_optional": false
        }
      ],
      "instructions": [
        "Step 1: Detailed instruction",
        "Step 2: Detailed instruction",
        "Step 3: Detailed instruction"
      ],
      "cooking_time_minutes": 30,
      "difficulty": "easy|medium|hard",
      "serving_size": 4,
      "dietary_tags": ["vegetarian", "gluten-free", "vegan", "dairy-free", "etc"]
    }
  ]
}

IMPORTANT FORMATTING RULES:
- Return ONLY valid JSON, no additional text
- Use lowercase for ingredient names
- Use standard units (cup, tablespoon, teaspoon, gram, ml, piece, etc.)
- Instructions should be clear, numbered steps
- Cooking time should be realistic and include both prep and cooking
- Difficulty should be one of: easy, medium, or hard
- Dietary tags should only include tags that truly apply to the recipe
- Ensure all JSON is properly formatted with correct quotes and commas
`, numRecipes, ingredientsStr, dietaryFilter, timeFilter)
}
