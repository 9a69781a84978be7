package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AmirKakon/recipe-rack/internal/api"
	"github.com/AmirKakon/recipe-rack/internal/middleware"
)

// SetupRouter configures the application routes. The assistant handler and
// the rate limiters are optional; nil skips the routes or the limiting.
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	assistantHandler *api.AssistantHandler,
	writeLimiter *middleware.RateLimiter,
	assistantLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	// The original frontend is served from another origin, so CORS is open.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Accept", "Origin"},
	}))

	root := router.Group("/api")

	var writeLimit gin.HandlerFunc
	if writeLimiter != nil {
		writeLimit = writeLimiter.Middleware()
	}
	recipeHandler.RegisterRoutes(root, writeLimit)

	if assistantHandler != nil {
		var assistantLimit gin.HandlerFunc
		if assistantLimiter != nil {
			assistantLimit = assistantLimiter.Middleware()
		}
		assistantHandler.RegisterRoutes(root, assistantLimit)
	}

	return router
}
