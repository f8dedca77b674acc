package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeSearchService defines the interface for the search pipeline
type IRecipeSearchService interface {
	Search(ctx context.Context, req types.RecipeSearchRequest, userID *uuid.UUID) (*types.RecipeSearchResponse, error)
	GetRecipeDetail(ctx context.Context, recipeID uuid.UUID, userID *uuid.UUID) (*types.EnrichedRecipe, error)
	PopularRecipes(ctx context.Context, limit int, userID *uuid.UUID) ([]types.EnrichedRecipe, error)
}

// IIngredientService defines the interface for ingredient catalog reads
type IIngredientService interface {
	ListIngredients(ctx context.Context, skip, limit int) ([]models.Ingredient, error)
	CountIngredients(ctx context.Context) (int64, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]models.Ingredient, error)
}

// IRatingService defines the interface for recipe rating operations
type IRatingService interface {
	RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, rating int) (*models.RecipeRating, error)
	DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error
	Aggregate(ctx context.Context, recipeID uuid.UUID) (*float64, int, error)
	UserRating(ctx context.Context, userID, recipeID uuid.UUID) (*int, error)
}

// IUserService defines the interface for favorites and shopping list
// operations
type IUserService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	AddShoppingListItem(ctx context.Context, userID uuid.UUID, ingredientName, quantity, unit string) (*models.ShoppingListItem, error)
	AddMissingIngredients(ctx context.Context, userID, recipeID uuid.UUID, available []string) ([]models.ShoppingListItem, error)
	ListShoppingListItems(ctx context.Context, userID uuid.UUID) ([]models.ShoppingListItem, error)
	SetItemPurchased(ctx context.Context, userID, itemID uuid.UUID, purchased bool) error
	RemoveShoppingListItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearPurchased(ctx context.Context, userID uuid.UUID) (int, error)
}

// ICacheStore defines the interface for cache maintenance operations
type ICacheStore interface {
	Invalidate(ctx context.Context, cacheKey string) (int, error)
	SweepExpired(ctx context.Context, maxAge time.Duration) (int, error)
	Stats(ctx context.Context) (*types.CacheStats, error)
}
