package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/types"
)

// MealPlanHandler exposes the meal planner plus the shopping list endpoints
// built on top of it. All routes require authentication.
type MealPlanHandler struct {
	planner   *service.MealPlanService
	optimizer *service.ShoppingOptimizer
	auth      middleware.TokenValidator
}

// NewMealPlanHandler creates a new MealPlanHandler instance
func NewMealPlanHandler(planner *service.MealPlanService, optimizer *service.ShoppingOptimizer, auth middleware.TokenValidator) *MealPlanHandler {
	return &MealPlanHandler{planner: planner, optimizer: optimizer, auth: auth}
}

// RegisterRoutes registers the planner routes
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	planner := router.Group("/planner", middleware.AuthMiddleware(h.auth))
	{
		planner.GET("", h.ListEntries)
		planner.POST("", h.AddEntry)
		planner.PUT("/:id", h.UpdateEntry)
		planner.DELETE("/:id", h.DeleteEntry)
		planner.GET("/shopping-list", h.ShoppingList)
		planner.GET("/shopping-list/optimized", h.OptimizedShoppingList)
	}
}

// dateRange parses the required start_date / end_date query parameters.
func dateRange(c *gin.Context) (types.Date, types.Date, bool) {
	start, err := types.ParseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return types.Date{}, types.Date{}, false
	}
	end, err := types.ParseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return types.Date{}, types.Date{}, false
	}
	return start, end, true
}

// ListEntries returns meal plan entries in the requested range
func (h *MealPlanHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	entries, err := h.planner.ListEntries(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// AddEntry schedules a recipe on a date
func (h *MealPlanHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.planner.AddEntry(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry applies a partial update to an owned entry
func (h *MealPlanHandler) UpdateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.planner.UpdateEntry(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes an owned entry
func (h *MealPlanHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.planner.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// ShoppingList aggregates the planner range into one item per
// (ingredient, unit)
func (h *MealPlanHandler) ShoppingList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	list, err := h.planner.BuildShoppingList(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// OptimizedShoppingList aggregates the planner range and assigns each item
// to its cheapest supermarket
func (h *MealPlanHandler) OptimizedShoppingList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	list, err := h.planner.BuildShoppingList(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	plan, err := h.optimizer.Optimize(c.Request.Context(), userID, list.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
