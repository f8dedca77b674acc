package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/fridgechef/backend/internal/service"
)

type IngredientHandler struct {
	ingredients service.IIngredientService
}

func NewIngredientHandler(ingredients service.IIngredientService) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/autocomplete", h.Autocomplete)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.ingredients.ListIngredients(c.Request.Context(), skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	total, err := h.ingredients.CountIngredients(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": items,
		"total":       total,
	})
}

func (h *IngredientHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.ingredients.Autocomplete(c.Request.Context(), query, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}
