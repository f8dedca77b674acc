package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/testdb"
)

func TestFavoriteLifecycle(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "fav@example.com")
	recipe := createTestRecipe(t, db, "Pasta")

	fav, err := users.IsFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	require.NoError(t, users.AddFavorite(ctx, user.ID, recipe.ID))
	// Favoriting twice is a no-op, not an error.
	require.NoError(t, users.AddFavorite(ctx, user.ID, recipe.ID))

	fav, err = users.IsFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	favorites, err := users.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, recipe.ID, favorites[0].ID)

	require.NoError(t, users.RemoveFavorite(ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, users.RemoveFavorite(ctx, user.ID, recipe.ID), service.ErrNotFound)
}

func TestAddFavoriteUnknownRecipe(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)

	user := createTestUser(t, db, "fav@example.com")
	err := users.AddFavorite(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAddShoppingListItemResolvesCatalog(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "shopper@example.com")

	scallion := models.Ingredient{
		Name:     "scallion",
		Category: "vegetable",
		Synonyms: models.JSONBStringArray{"green onion"},
	}
	require.NoError(t, db.Create(&scallion).Error)

	// A synonym resolves to the existing catalog entry.
	item, err := users.AddShoppingListItem(ctx, user.ID, "Green Onion", "2", "stalks")
	require.NoError(t, err)
	assert.Equal(t, scallion.ID, item.IngredientID)

	// An unknown name creates a catalog entry with category "other".
	item, err = users.AddShoppingListItem(ctx, user.ID, "Dragonfruit", "1", "whole")
	require.NoError(t, err)
	assert.Equal(t, "dragonfruit", item.Ingredient.Name)
	assert.Equal(t, "other", item.Ingredient.Category)

	_, err = users.AddShoppingListItem(ctx, user.ID, "  !!  ", "1", "")
	var vErr *service.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAddMissingIngredients(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)
	persister := service.NewRecipePersister(db)
	ctx := context.Background()

	user := createTestUser(t, db, "shopper@example.com")

	stored, err := persister.StoreRecipe(ctx, service.RecipeDraft{
		Name:        "Stir Fry",
		Description: "Fast dinner.",
		Ingredients: []service.DraftIngredient{
			{Name: "rice", Quantity: "1", Unit: "cup"},
			{Name: "broccoli", Quantity: "1", Unit: "head"},
			{Name: "soy sauce", Quantity: "2", Unit: "tbsp"},
		},
		Instructions:       []string{"Cook."},
		CookingTimeMinutes: 20,
		Difficulty:         "easy",
		ServingSize:        2,
	}, "key-1")
	require.NoError(t, err)

	added, err := users.AddMissingIngredients(ctx, user.ID, stored.ID, []string{"Rice"})
	require.NoError(t, err)
	require.Len(t, added, 2)

	names := []string{added[0].Ingredient.Name, added[1].Ingredient.Name}
	assert.ElementsMatch(t, []string{"broccoli", "soy sauce"}, names)

	_, err = users.AddMissingIngredients(ctx, user.ID, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestShoppingListPurchaseFlow(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "shopper@example.com")

	milk, err := users.AddShoppingListItem(ctx, user.ID, "milk", "1", "l")
	require.NoError(t, err)
	eggs, err := users.AddShoppingListItem(ctx, user.ID, "eggs", "12", "")
	require.NoError(t, err)

	require.NoError(t, users.SetItemPurchased(ctx, user.ID, milk.ID, true))

	items, err := users.ListShoppingListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Unpurchased items sort first.
	assert.Equal(t, eggs.ID, items[0].ID)
	assert.True(t, items[1].IsPurchased)

	cleared, err := users.ClearPurchased(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	items, err = users.ListShoppingListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, eggs.ID, items[0].ID)
}

func TestShoppingListOwnership(t *testing.T) {
	db := testdb.Open(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	item, err := users.AddShoppingListItem(ctx, alice.ID, "milk", "1", "l")
	require.NoError(t, err)

	// Bob cannot touch Alice's items.
	assert.ErrorIs(t, users.SetItemPurchased(ctx, bob.ID, item.ID, true), service.ErrNotFound)
	assert.ErrorIs(t, users.RemoveShoppingListItem(ctx, bob.ID, item.ID), service.ErrNotFound)

	require.NoError(t, users.RemoveShoppingListItem(ctx, alice.ID, item.ID))
}
