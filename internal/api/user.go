package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/service"
)

type UserHandler struct {
	users       service.IUserService
	authService middleware.TokenValidator
}

func NewUserHandler(users service.IUserService, authService middleware.TokenValidator) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/users/me")
	me.Use(middleware.AuthMiddleware(h.authService))
	{
		me.GET("/favorites", h.ListFavorites)

		shopping := me.Group("/shopping-list")
		{
			shopping.GET("", h.ListShoppingList)
			shopping.POST("", h.AddShoppingListItem)
			shopping.POST("/from-recipe/:id", h.AddMissingFromRecipe)
			shopping.PATCH("/:itemID", h.UpdateShoppingListItem)
			shopping.DELETE("/purchased", h.ClearPurchased)
			shopping.DELETE("/:itemID", h.RemoveShoppingListItem)
		}
	}
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipes, err := h.users.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *UserHandler) ListShoppingList(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	items, err := h.users.ListShoppingListItems(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *UserHandler) AddShoppingListItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req struct {
		IngredientName string `json:"ingredient_name" binding:"required"`
		Quantity       string `json:"quantity"`
		Unit           string `json:"unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.users.AddShoppingListItem(c.Request.Context(), userID, req.IngredientName, req.Quantity, req.Unit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *UserHandler) AddMissingFromRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req struct {
		AvailableIngredients []string `json:"available_ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.users.AddMissingIngredients(c.Request.Context(), userID, recipeID, req.AvailableIngredients)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *UserHandler) UpdateShoppingListItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req struct {
		IsPurchased *bool `json:"is_purchased" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetItemPurchased(c.Request.Context(), userID, itemID, *req.IsPurchased); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RemoveShoppingListItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.users.RemoveShoppingListItem(c.Request.Context(), userID, itemID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ClearPurchased(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	cleared, err := h.users.ClearPurchased(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}
