package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/pageza/fridgechef/backend/internal/types"
)

// GenerateCacheKey derives the cache fingerprint for a search: a
// SHA-256 digest over the canonical JSON of the normalized, sorted
// ingredient list and the present filters. The same semantic inputs
// always hash to the same key regardless of input ordering.
func GenerateCacheKey(ingredients []string, filters *types.SearchFilters) string {
	sorted := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		sorted = append(sorted, NormalizeIngredientName(ing))
	}
	sort.Strings(sorted)

	cacheData := map[string]interface{}{
		"ingredients": sorted,
	}

	if filters != nil {
		if len(filters.DietaryPreferences) > 0 {
			prefs := make([]string, 0, len(filters.DietaryPreferences))
			for _, p := range filters.DietaryPreferences {
				prefs = append(prefs, strings.ToLower(strings.TrimSpace(p)))
			}
			sort.Strings(prefs)
			cacheData["dietary_preferences"] = prefs
		}
		if filters.CookingTimeRange != nil {
			cacheData["cooking_time_range"] = []int{filters.CookingTimeRange[0], filters.CookingTimeRange[1]}
		}
	}

	// encoding/json marshals map keys in sorted order, which makes the
	// serialized form canonical.
	cacheBytes, _ := json.Marshal(cacheData)

	digest := sha256.Sum256(cacheBytes)
	return hex.EncodeToString(digest[:])
}
