package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
)

// IngredientService handles ingredient catalog reads: listing,
// autocomplete and synonym-aware lookup.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns a page of the ingredient catalog.
func (s *IngredientService) ListIngredients(ctx context.Context, skip, limit int) ([]models.Ingredient, error) {
	if limit <= 0 {
		limit = 1000
	}
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).Order("name").Offset(skip).Limit(limit).Find(&ingredients).Error
	return ingredients, err
}

// CountIngredients returns the catalog size.
func (s *IngredientService) CountIngredients(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Count(&count).Error
	return count, err
}

// Autocomplete finds ingredients whose name or synonyms contain the
// query, ordered exact match first, then prefix, then contains, then
// synonym-only matches. Queries shorter than 2 characters yield nothing.
func (s *IngredientService) Autocomplete(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	normalized := NormalizeIngredientName(query)
	if len(normalized) < 2 {
		return []models.Ingredient{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + normalized + "%"
	var candidates []models.Ingredient
	db := s.db.WithContext(ctx)
	// Over-fetch on name, then widen by synonyms in memory; the synonym
	// column is a JSON array and LIKE over its text form is only a
	// prefilter.
	if err := db.Where(s.synonymLikeClause(), pattern, pattern).Limit(limit * 2).Find(&candidates).Error; err != nil {
		return nil, err
	}

	matched := candidates[:0]
	for i := range candidates {
		if ingredientMatches(&candidates[i], normalized) {
			matched = append(matched, candidates[i])
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return autocompleteRank(&matched[i], normalized) < autocompleteRank(&matched[j], normalized)
	})
	return matched, nil
}

func (s *IngredientService) synonymLikeClause() string {
	if s.db.Dialector.Name() == "postgres" {
		return "LOWER(name) LIKE ? OR synonyms::text LIKE ?"
	}
	return "LOWER(name) LIKE ? OR synonyms LIKE ?"
}

func ingredientMatches(ing *models.Ingredient, normalized string) bool {
	if strings.Contains(strings.ToLower(ing.Name), normalized) {
		return true
	}
	for _, syn := range ing.Synonyms {
		if strings.Contains(strings.ToLower(syn), normalized) {
			return true
		}
	}
	return false
}

// autocompleteRank orders results: exact, prefix, contains, synonym.
func autocompleteRank(ing *models.Ingredient, normalized string) int {
	name := strings.ToLower(ing.Name)
	switch {
	case name == normalized:
		return 0
	case strings.HasPrefix(name, normalized):
		return 1
	case strings.Contains(name, normalized):
		return 2
	default:
		return 3
	}
}

// findIngredientByNameOrSynonym resolves an already-normalized name to
// an existing ingredient, first by exact name, then by scanning
// synonyms. Returns nil without error when nothing matches.
func findIngredientByNameOrSynonym(tx *gorm.DB, normalized string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := tx.Where("LOWER(name) = ?", normalized).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	likeClause := "synonyms LIKE ?"
	if tx.Dialector.Name() == "postgres" {
		likeClause = "synonyms::text LIKE ?"
	}

	var candidates []models.Ingredient
	if err := tx.Where(likeClause, "%"+normalized+"%").Find(&candidates).Error; err != nil {
		return nil, err
	}
	for i := range candidates {
		for _, syn := range candidates[i].Synonyms {
			if NormalizeIngredientName(syn) == normalized {
				return &candidates[i], nil
			}
		}
	}
	return nil, nil
}
