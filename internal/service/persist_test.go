package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/testdb"
)

func pastaDraft() service.RecipeDraft {
	return service.RecipeDraft{
		Name:        "Tomato Pasta",
		Description: "Simple pasta.",
		Ingredients: []service.DraftIngredient{
			{Name: "Pasta", Quantity: "200", Unit: "g"},
			{Name: "Tomato", Quantity: "3", Unit: "whole"},
			{Name: "Parmesan", Quantity: "30", Unit: "g", IsOptional: true},
		},
		Instructions:       []string{"Boil pasta.", "Add sauce."},
		CookingTimeMinutes: 25,
		Difficulty:         "easy",
		ServingSize:        2,
		DietaryTags:        []string{"Vegetarian"},
	}
}

func TestStoreRecipe(t *testing.T) {
	db := testdb.Open(t)
	persister := service.NewRecipePersister(db)

	stored, err := persister.StoreRecipe(context.Background(), pastaDraft(), "cache-key-1")
	require.NoError(t, err)

	assert.Equal(t, "Tomato Pasta", stored.Name)
	assert.Equal(t, models.SourceGenerated, stored.Source)
	require.NotNil(t, stored.CacheKey)
	assert.Equal(t, "cache-key-1", *stored.CacheKey)
	assert.Zero(t, stored.ViewCount)

	require.Len(t, stored.RecipeIngredients, 3)
	names := make([]string, 0, 3)
	for _, ri := range stored.RecipeIngredients {
		names = append(names, ri.Ingredient.Name)
	}
	assert.ElementsMatch(t, []string{"pasta", "tomato", "parmesan"}, names)

	require.Len(t, stored.DietaryTags, 1)
	assert.Equal(t, "vegetarian", stored.DietaryTags[0].Name)

	// New catalog entries default to category "other".
	var pasta models.Ingredient
	require.NoError(t, db.First(&pasta, "name = ?", "pasta").Error)
	assert.Equal(t, "other", pasta.Category)
}

func TestStoreRecipeReusesIngredientBySynonym(t *testing.T) {
	db := testdb.Open(t)
	persister := service.NewRecipePersister(db)

	scallion := models.Ingredient{
		Name:     "scallion",
		Category: "vegetable",
		Synonyms: models.JSONBStringArray{"green onion", "spring onion"},
	}
	require.NoError(t, db.Create(&scallion).Error)

	draft := pastaDraft()
	draft.Ingredients = []service.DraftIngredient{
		{Name: "Green Onion!", Quantity: "2", Unit: "stalks"},
	}

	stored, err := persister.StoreRecipe(context.Background(), draft, "cache-key-2")
	require.NoError(t, err)
	require.Len(t, stored.RecipeIngredients, 1)
	assert.Equal(t, scallion.ID, stored.RecipeIngredients[0].IngredientID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStoreRecipeDeduplicatesTags(t *testing.T) {
	db := testdb.Open(t)
	persister := service.NewRecipePersister(db)
	ctx := context.Background()

	first := pastaDraft()
	second := pastaDraft()
	second.Name = "Tomato Soup"

	_, err := persister.StoreRecipe(ctx, first, "key-1")
	require.NoError(t, err)
	_, err = persister.StoreRecipe(ctx, second, "key-2")
	require.NoError(t, err)

	var tagCount int64
	require.NoError(t, db.Model(&models.DietaryTag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount)
}

// failRecipeCreate rejects inserts of recipes with the given name,
// simulating a storage failure for just that draft.
func failRecipeCreate(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test_fail_create", func(tx *gorm.DB) {
		if r, ok := tx.Statement.Dest.(*models.Recipe); ok && r.Name == name {
			tx.AddError(errors.New("induced storage failure"))
		}
	})
	require.NoError(t, err)
}

func TestStoreBatchSalvagesPartialFailure(t *testing.T) {
	db := testdb.Open(t)
	persister := service.NewRecipePersister(db)
	failRecipeCreate(t, db, "Broken Soup")

	broken := pastaDraft()
	broken.Name = "Broken Soup"
	good := pastaDraft()

	stored, err := persister.StoreBatch(context.Background(), []service.RecipeDraft{broken, good}, "key-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Tomato Pasta", stored[0].Name)
}

func TestStoreBatchFailsWhenNothingStored(t *testing.T) {
	db := testdb.Open(t)
	persister := service.NewRecipePersister(db)
	failRecipeCreate(t, db, "Broken Soup")

	broken := pastaDraft()
	broken.Name = "Broken Soup"

	_, err := persister.StoreBatch(context.Background(), []service.RecipeDraft{broken}, "key-1")
	require.Error(t, err)

	var genErr *service.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
