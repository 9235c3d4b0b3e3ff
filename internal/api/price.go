package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/types"
)

// PriceHandler exposes community price submission and lookup. Submissions are
// rate limited per user.
type PriceHandler struct {
	prices  *service.PriceService
	auth    middleware.TokenValidator
	limiter *middleware.RateLimiter
}

// NewPriceHandler creates a new PriceHandler instance
func NewPriceHandler(prices *service.PriceService, auth middleware.TokenValidator, limiter *middleware.RateLimiter) *PriceHandler {
	return &PriceHandler{prices: prices, auth: auth, limiter: limiter}
}

// RegisterRoutes registers the price routes
func (h *PriceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prices := router.Group("/prices", middleware.AuthMiddleware(h.auth))
	{
		prices.GET("/ingredient/:id", h.GetPricesForIngredient)
		prices.GET("/ingredient/:id/cheapest", h.GetCheapestPrice)
		prices.PUT("", h.limiter.RateLimitMiddleware(), h.UpsertPrice)
		prices.DELETE("/:id", h.DeletePrice)
	}
}

// GetPricesForIngredient lists the prices visible to the caller for one
// ingredient
func (h *PriceHandler) GetPricesForIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	prices, err := h.prices.GetPricesForIngredient(c.Request.Context(), ingredientID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": prices})
}

// GetCheapestPrice returns the caller's cheapest visible price for one
// ingredient, or a null price when none exists
func (h *PriceHandler) GetCheapestPrice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	cheapest, err := h.prices.GetCheapestPrice(c.Request.Context(), ingredientID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": cheapest})
}

// UpsertPrice records or replaces the caller's price for an
// (ingredient, supermarket) pair
func (h *PriceHandler) UpsertPrice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpsertPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PricePerUnit.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_unit must not be negative"})
		return
	}

	price, err := h.prices.UpsertPrice(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, price)
}

// DeletePrice removes one of the caller's own price rows
func (h *PriceHandler) DeletePrice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.prices.DeletePrice(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "price deleted"})
}
