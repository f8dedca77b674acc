package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/config"
	"github.com/pageza/fridgechef/backend/internal/api"
	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/router"
	"github.com/pageza/fridgechef/backend/internal/service"
)

// Server wires services, handlers and routes into one HTTP server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New assembles the full application around an open database
// connection. The Redis client is optional; without it the HTTP rate
// limit middleware is not installed.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, provider service.ChatProvider) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	cacheStore := service.NewCacheStore(db)
	ratingService := service.NewRatingService(db)
	persister := service.NewRecipePersister(db)
	if s3Config, err := config.NewS3Config(context.Background()); err == nil {
		persister = persister.WithImageMirror(service.NewImageService(s3Config))
	} else {
		log.Printf("[Server] S3 unavailable, recipe images keep provider URLs: %v", err)
	}
	userService := service.NewUserService(db)
	ingredientService := service.NewIngredientService(db)

	limiter := service.NewSlidingWindowLimiter(30)
	generator := service.NewGenerationClient(provider, limiter)

	searchService := service.NewRecipeSearchService(db, cacheStore, generator, persister, ratingService)

	var searchRateLimit *middleware.RateLimiter
	if redisClient != nil {
		searchRateLimit = middleware.NewSearchRateLimiter(redisClient)
	}

	engine := router.SetupRouter(router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Recipe:     api.NewRecipeHandler(searchService, ratingService, userService, authService, searchRateLimit),
		Ingredient: api.NewIngredientHandler(ingredientService),
		User:       api.NewUserHandler(userService, authService),
		Cache:      api.NewCacheHandler(cacheStore, authService),
	})

	return &Server{
		engine: engine,
		cfg:    cfg,
	}
}

// Start begins serving HTTP. Blocks until the listener stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
