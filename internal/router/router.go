package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/fridgechef/backend/internal/api"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *api.AuthHandler
	Recipe     *api.RecipeHandler
	Ingredient *api.IngredientHandler
	User       *api.UserHandler
	Cache      *api.CacheHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)
	h.Recipe.RegisterRoutes(v1)
	h.Ingredient.RegisterRoutes(v1)
	h.User.RegisterRoutes(v1)
	h.Cache.RegisterRoutes(v1)

	return router
}
