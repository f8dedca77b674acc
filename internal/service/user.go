package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/models"
)

// UserService covers the per-user surfaces that hang off recipes:
// favorites and the shopping list.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// AddFavorite marks a recipe as a favorite. Favoriting an already
// favorited recipe is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var existing models.UserFavorite
	err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(&models.UserFavorite{UserID: userID, RecipeID: recipeID}).Error
}

// RemoveFavorite unmarks a favorite.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.UserFavorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFavorites returns the user's favorited recipes, newest first.
func (s *UserService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var favorites []models.UserFavorite
	err := s.db.WithContext(ctx).
		Preload("Recipe.RecipeIngredients.Ingredient").
		Preload("Recipe.DietaryTags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(favorites))
	for _, fav := range favorites {
		recipes = append(recipes, fav.Recipe)
	}
	return recipes, nil
}

// IsFavorite reports whether the user has favorited the recipe.
func (s *UserService) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UserFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// AddShoppingListItem puts an ingredient on the user's shopping list.
// The ingredient name resolves through the catalog the same way recipe
// persistence does, creating an "other" entry on first sight.
func (s *UserService) AddShoppingListItem(ctx context.Context, userID uuid.UUID, ingredientName, quantity, unit string) (*models.ShoppingListItem, error) {
	normalized := NormalizeIngredientName(ingredientName)
	if normalized == "" {
		return nil, &ValidationError{Field: "ingredient_name", Reason: "must not be empty"}
	}

	var item *models.ShoppingListItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredient, err := findIngredientByNameOrSynonym(tx, normalized)
		if err != nil {
			return err
		}
		if ingredient == nil {
			ingredient = &models.Ingredient{
				Name:     normalized,
				Category: "other",
				Synonyms: models.JSONBStringArray{},
			}
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}

		item = &models.ShoppingListItem{
			UserID:       userID,
			IngredientID: ingredient.ID,
			Quantity:     quantity,
			Unit:         unit,
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		item.Ingredient = *ingredient
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddMissingIngredients adds every recipe ingredient the user does not
// already have to the shopping list, and returns the items added.
func (s *UserService) AddMissingIngredients(ctx context.Context, userID, recipeID uuid.UUID, available []string) ([]models.ShoppingListItem, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	availableSet := normalizeIngredientSet(available)

	added := make([]models.ShoppingListItem, 0, len(recipe.RecipeIngredients))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ri := range recipe.RecipeIngredients {
			if _, ok := availableSet[NormalizeIngredientName(ri.Ingredient.Name)]; ok {
				continue
			}
			item := models.ShoppingListItem{
				UserID:       userID,
				IngredientID: ri.IngredientID,
				Quantity:     ri.Quantity,
				Unit:         ri.Unit,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			item.Ingredient = ri.Ingredient
			added = append(added, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// ListShoppingListItems returns the user's list, unpurchased first.
func (s *UserService) ListShoppingListItems(ctx context.Context, userID uuid.UUID) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Preload("Ingredient").
		Where("user_id = ?", userID).
		Order("is_purchased, created_at DESC").
		Find(&items).Error
	return items, err
}

// SetItemPurchased flips the purchased flag on one of the user's items.
func (s *UserService) SetItemPurchased(ctx context.Context, userID, itemID uuid.UUID, purchased bool) error {
	result := s.db.WithContext(ctx).Model(&models.ShoppingListItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("is_purchased", purchased)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveShoppingListItem deletes one of the user's items.
func (s *UserService) RemoveShoppingListItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.ShoppingListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearPurchased removes every purchased item from the user's list and
// returns the number removed.
func (s *UserService) ClearPurchased(ctx context.Context, userID uuid.UUID) (int, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND is_purchased = ?", userID, true).
		Delete(&models.ShoppingListItem{})
	return int(result.RowsAffected), result.Error
}
