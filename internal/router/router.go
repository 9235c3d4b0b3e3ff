package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/api"
	"github.com/grocerly/backend/internal/middleware"
)

// Handlers bundles every API handler the router mounts.
type Handlers struct {
	Auth         *api.AuthHandler
	Ingredients  *api.IngredientHandler
	Recipes      *api.RecipeHandler
	Planner      *api.MealPlanHandler
	Prices       *api.PriceHandler
	Exclusions   *api.ExclusionHandler
	Supermarkets *api.SupermarketHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Ingredients.RegisterRoutes(v1)
	h.Recipes.RegisterRoutes(v1)
	h.Planner.RegisterRoutes(v1)
	h.Prices.RegisterRoutes(v1)
	h.Exclusions.RegisterRoutes(v1)
	h.Supermarkets.RegisterRoutes(v1)

	return router
}
