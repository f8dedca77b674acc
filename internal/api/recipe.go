package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/types"
)

type RecipeHandler struct {
	search      service.IRecipeSearchService
	ratings     service.IRatingService
	users       service.IUserService
	authService middleware.TokenValidator
	searchLimit *middleware.RateLimiter
}

func NewRecipeHandler(
	search service.IRecipeSearchService,
	ratings service.IRatingService,
	users service.IUserService,
	authService middleware.TokenValidator,
	searchLimit *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		search:      search,
		ratings:     ratings,
		users:       users,
		authService: authService,
		searchLimit: searchLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		search := recipes.Group("")
		search.Use(middleware.OptionalAuthMiddleware(h.authService))
		if h.searchLimit != nil {
			search.Use(h.searchLimit.RateLimitMiddleware())
		}
		search.POST("/search", h.SearchRecipes)

		recipes.GET("/popular", middleware.OptionalAuthMiddleware(h.authService), h.PopularRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)

		recipes.POST("/:id/rating", middleware.AuthMiddleware(h.authService), h.RateRecipe)
		recipes.DELETE("/:id/rating", middleware.AuthMiddleware(h.authService), h.DeleteRating)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.UnfavoriteRecipe)
	}
}

// optionalUserID returns the requesting user's ID when authenticated.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req types.RecipeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.search.Search(c.Request.Context(), req, optionalUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := h.search.GetRecipeDetail(c.Request.Context(), id, optionalUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) PopularRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	recipes, err := h.search.PopularRecipes(c.Request.Context(), limit, optionalUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.RateRecipe(c.Request.Context(), userID, id, req.Rating)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *RecipeHandler) DeleteRating(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.ratings.DeleteRating(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.users.AddFavorite(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.users.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
