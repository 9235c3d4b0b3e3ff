package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/types"
)

// IngredientHandler exposes the ingredient catalog
type IngredientHandler struct {
	ingredients *service.IngredientService
	auth        middleware.TokenValidator
}

// NewIngredientHandler creates a new IngredientHandler instance
func NewIngredientHandler(ingredients *service.IngredientService, auth middleware.TokenValidator) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, auth: auth}
}

// RegisterRoutes registers the ingredient routes
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", middleware.AuthMiddleware(h.auth), h.CreateIngredient)
	}
}

// ListIngredients lists public ingredients, filtered by ?q=
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	ingredients, err := h.ingredients.ListIngredients(c.Request.Context(), c.Query("q"), offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// GetIngredient retrieves one ingredient
func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.ingredients.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

// CreateIngredient adds an ingredient to the catalog
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredients.CreateIngredient(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}
