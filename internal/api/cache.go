package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/service"
)

// CacheHandler exposes maintenance operations over the generated
// recipe cache. All endpoints require authentication.
type CacheHandler struct {
	cache       service.ICacheStore
	authService middleware.TokenValidator
}

func NewCacheHandler(cache service.ICacheStore, authService middleware.TokenValidator) *CacheHandler {
	return &CacheHandler{cache: cache, authService: authService}
}

func (h *CacheHandler) RegisterRoutes(router *gin.RouterGroup) {
	cache := router.Group("/cache")
	cache.Use(middleware.AuthMiddleware(h.authService))
	{
		cache.GET("/stats", h.Stats)
		cache.DELETE("/expired", h.SweepExpired)
		cache.DELETE("/:key", h.Invalidate)
	}
}

func (h *CacheHandler) Stats(c *gin.Context) {
	stats, err := h.cache.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CacheHandler) SweepExpired(c *gin.Context) {
	count, err := h.cache.SweepExpired(c.Request.Context(), service.DefaultCacheMaxAge)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

func (h *CacheHandler) Invalidate(c *gin.Context) {
	count, err := h.cache.Invalidate(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
