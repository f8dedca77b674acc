package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
)

// ImageMirror re-hosts externally hosted image URLs. Optional; without
// one, drafts keep whatever URL the provider returned.
type ImageMirror interface {
	MirrorImage(ctx context.Context, imageURL string) string
}

// RecipePersister stores parsed recipe drafts, resolving ingredient and
// dietary tag references against the catalog as it goes.
type RecipePersister struct {
	db     *gorm.DB
	images ImageMirror
}

func NewRecipePersister(db *gorm.DB) *RecipePersister {
	return &RecipePersister{db: db}
}

// WithImageMirror enables image re-hosting for stored recipes.
func (p *RecipePersister) WithImageMirror(images ImageMirror) *RecipePersister {
	p.images = images
	return p
}

// StoreRecipe persists one draft under the given cache key. The recipe
// row, its ingredient associations and its tag associations commit in a
// single transaction or not at all.
func (p *RecipePersister) StoreRecipe(ctx context.Context, draft RecipeDraft, cacheKey string) (*models.Recipe, error) {
	var recipe *models.Recipe

	imageURL := draft.ImageURL
	if p.images != nil && imageURL != "" {
		imageURL = p.images.MirrorImage(ctx, imageURL)
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := cacheKey
		recipe = &models.Recipe{
			Name:               draft.Name,
			Description:        draft.Description,
			Instructions:       models.JSONBStringArray(draft.Instructions),
			CookingTimeMinutes: draft.CookingTimeMinutes,
			Difficulty:         draft.Difficulty,
			ServingSize:        draft.ServingSize,
			ImageURL:           imageURL,
			NutritionalInfo:    models.JSONBMap(draft.NutritionalInfo),
			ViewCount:          0,
			Source:             models.SourceGenerated,
			CacheKey:           &key,
		}
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		for _, draftIng := range draft.Ingredients {
			ingredient, err := p.resolveIngredient(tx, draftIng.Name)
			if err != nil {
				return err
			}
			association := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Quantity:     draftIng.Quantity,
				Unit:         draftIng.Unit,
				IsOptional:   draftIng.IsOptional,
			}
			if err := tx.Create(&association).Error; err != nil {
				return err
			}
		}

		for _, tagName := range draft.DietaryTags {
			tag, err := p.resolveDietaryTag(tx, tagName)
			if err != nil {
				return err
			}
			if tag == nil {
				continue
			}
			if err := tx.Model(recipe).Association("DietaryTags").Append(tag); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload with associations so callers see the stored state.
	var stored models.Recipe
	if err := p.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Preload("DietaryTags").
		First(&stored, "id = ?", recipe.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// StoreBatch persists a batch of drafts. Failures on individual drafts
// are logged and skipped; the batch fails only when nothing could be
// stored.
func (p *RecipePersister) StoreBatch(ctx context.Context, drafts []RecipeDraft, cacheKey string) ([]models.Recipe, error) {
	stored := make([]models.Recipe, 0, len(drafts))
	for _, draft := range drafts {
		recipe, err := p.StoreRecipe(ctx, draft, cacheKey)
		if err != nil {
			perr := &PersistenceError{RecipeName: draft.Name, Err: err}
			log.Printf("[RecipePersister] %v", perr)
			continue
		}
		stored = append(stored, *recipe)
	}

	if len(stored) == 0 {
		return nil, &GenerationError{Err: fmt.Errorf("failed to store any recipes from batch of %d", len(drafts))}
	}

	log.Printf("[RecipePersister] Stored %d/%d recipes for key %s", len(stored), len(drafts), cacheKey)
	return stored, nil
}

// resolveIngredient finds the ingredient a draft name refers to, by
// normalized name or synonym, creating it with category "other" on
// first encounter.
func (p *RecipePersister) resolveIngredient(tx *gorm.DB, rawName string) (*models.Ingredient, error) {
	normalized := NormalizeIngredientName(rawName)

	ingredient, err := findIngredientByNameOrSynonym(tx, normalized)
	if err != nil {
		return nil, err
	}
	if ingredient != nil {
		return ingredient, nil
	}

	created := &models.Ingredient{
		Name:     normalized,
		Category: "other",
		Synonyms: models.JSONBStringArray{},
	}
	if err := tx.Create(created).Error; err != nil {
		// A concurrent generation run may have created the same
		// ingredient between lookup and insert; re-resolve once.
		existing, lookupErr := findIngredientByNameOrSynonym(tx, normalized)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// resolveDietaryTag finds or creates the tag for a normalized name.
// Empty names (after normalization) are dropped.
func (p *RecipePersister) resolveDietaryTag(tx *gorm.DB, rawName string) (*models.DietaryTag, error) {
	normalized := NormalizeIngredientName(rawName)
	if normalized == "" {
		return nil, nil
	}

	var tag models.DietaryTag
	err := tx.Where("LOWER(name) = ?", normalized).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.DietaryTag{Name: normalized}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
