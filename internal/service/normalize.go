package service

import (
	"regexp"
	"strings"
)

var (
	ingredientStripRe    = regexp.MustCompile(`[^a-z0-9\s\-]`)
	ingredientCollapseRe = regexp.MustCompile(`\s+`)
)

// NormalizeIngredientName canonicalizes an ingredient name for matching
// and storage: lowercase, trimmed, letters/digits/spaces/hyphens only,
// internal whitespace collapsed. Total and idempotent.
func NormalizeIngredientName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = ingredientStripRe.ReplaceAllString(normalized, "")
	normalized = ingredientCollapseRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// normalizeIngredientSet normalizes every name and returns the result
// as a set for membership tests.
func normalizeIngredientSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[NormalizeIngredientName(n)] = struct{}{}
	}
	return set
}
