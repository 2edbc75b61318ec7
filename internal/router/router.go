package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/api"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
)

// Setup configures the application routes. Identify runs on every request so
// handlers can see who is calling; per-route RequireAuth gates the endpoints
// that need a caller.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	aiHandler *api.AIHandler,
	resolver middleware.IdentityResolver,
	allowedOrigins []string,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.Identify(resolver, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	authHandler.RegisterAdminRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	if aiHandler != nil {
		aiHandler.RegisterRoutes(v1)
	}

	return router
}
