package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/types"
)

// SupermarketHandler exposes the supermarket catalog
type SupermarketHandler struct {
	supermarkets *service.SupermarketService
	auth         middleware.TokenValidator
}

// NewSupermarketHandler creates a new SupermarketHandler instance
func NewSupermarketHandler(supermarkets *service.SupermarketService, auth middleware.TokenValidator) *SupermarketHandler {
	return &SupermarketHandler{supermarkets: supermarkets, auth: auth}
}

// RegisterRoutes registers the supermarket routes
func (h *SupermarketHandler) RegisterRoutes(router *gin.RouterGroup) {
	supermarkets := router.Group("/supermarkets")
	{
		supermarkets.GET("", h.ListSupermarkets)
		supermarkets.GET("/:id", h.GetSupermarket)
		supermarkets.POST("", middleware.AuthMiddleware(h.auth), h.CreateSupermarket)
		supermarkets.PUT("/:id", middleware.AuthMiddleware(h.auth), h.UpdateSupermarket)
		supermarkets.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeactivateSupermarket)
	}
}

// ListSupermarkets lists supermarkets; ?active=true hides deactivated ones
func (h *SupermarketHandler) ListSupermarkets(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	supermarkets, err := h.supermarkets.ListSupermarkets(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supermarkets": supermarkets})
}

// GetSupermarket retrieves one supermarket
func (h *SupermarketHandler) GetSupermarket(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	supermarket, err := h.supermarkets.GetSupermarket(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, supermarket)
}

// CreateSupermarket adds a supermarket to the catalog
func (h *SupermarketHandler) CreateSupermarket(c *gin.Context) {
	var req types.CreateSupermarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supermarket, err := h.supermarkets.CreateSupermarket(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, supermarket)
}

// UpdateSupermarket applies a partial update
func (h *SupermarketHandler) UpdateSupermarket(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateSupermarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supermarket, err := h.supermarkets.UpdateSupermarket(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, supermarket)
}

// DeactivateSupermarket soft-deletes a supermarket; its price history stays
func (h *SupermarketHandler) DeactivateSupermarket(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.supermarkets.DeactivateSupermarket(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "supermarket deactivated"})
}
