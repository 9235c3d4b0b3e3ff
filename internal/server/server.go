package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/grocerly/backend/config"
	"github.com/grocerly/backend/internal/api"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/router"
	"github.com/grocerly/backend/internal/service"
)

// Server wires the services and handlers together and runs the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// NewServer creates a new server instance. The Redis client may be nil, which
// disables caching and rate limiting but keeps every endpoint functional.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	nutrition := service.DefaultNutritionPolicy()

	authService := service.NewAuthService(db, cfg.JWTSecret)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db, nutrition)
	plannerService := service.NewMealPlanService(db, nutrition)
	priceService := service.NewPriceService(db, redisClient)
	exclusionService := service.NewExclusionService(db, redisClient)
	supermarketService := service.NewSupermarketService(db, redisClient)
	optimizer := service.NewShoppingOptimizer(priceService, service.OptimizerConfig{
		CurrencySymbol: cfg.CurrencySymbol,
		Precision:      2,
	})

	priceLimiter := middleware.NewPriceSubmissionRateLimiter(redisClient)

	engine := router.SetupRouter(router.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Ingredients:  api.NewIngredientHandler(ingredientService, authService),
		Recipes:      api.NewRecipeHandler(recipeService, authService),
		Planner:      api.NewMealPlanHandler(plannerService, optimizer, authService),
		Prices:       api.NewPriceHandler(priceService, authService, priceLimiter),
		Exclusions:   api.NewExclusionHandler(exclusionService, authService),
		Supermarkets: api.NewSupermarketHandler(supermarketService, authService),
	}, cfg.CORSOrigins)

	return &Server{engine: engine}
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.engine,
	}

	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
