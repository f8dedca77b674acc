package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/fridgechef/backend/internal/service"
)

// writeServiceError translates service-layer errors into JSON error
// responses. Unknown errors become opaque 500s so internals never leak
// to clients.
func writeServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var parseErr *service.ParseError
	var genErr *service.GenerationError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &genErr), errors.As(err, &parseErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation failed, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
