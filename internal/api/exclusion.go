package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerly/backend/internal/middleware"
	"github.com/grocerly/backend/internal/service"
	"github.com/grocerly/backend/internal/types"
)

// ExclusionHandler exposes per-user supermarket exclusions
type ExclusionHandler struct {
	exclusions *service.ExclusionService
	auth       middleware.TokenValidator
}

// NewExclusionHandler creates a new ExclusionHandler instance
func NewExclusionHandler(exclusions *service.ExclusionService, auth middleware.TokenValidator) *ExclusionHandler {
	return &ExclusionHandler{exclusions: exclusions, auth: auth}
}

// RegisterRoutes registers the exclusion routes
func (h *ExclusionHandler) RegisterRoutes(router *gin.RouterGroup) {
	exclusions := router.Group("/exclusions", middleware.AuthMiddleware(h.auth))
	{
		exclusions.GET("", h.ListExclusions)
		exclusions.POST("", h.AddExclusion)
		exclusions.DELETE("/:id", h.RemoveExclusion)
	}
}

// ListExclusions returns the caller's exclusions
func (h *ExclusionHandler) ListExclusions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	exclusions, err := h.exclusions.GetExclusions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exclusions": exclusions})
}

// AddExclusion records an exclusion; re-adding the same pair is idempotent
func (h *ExclusionHandler) AddExclusion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exclusion, err := h.exclusions.AddExclusion(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exclusion)
}

// RemoveExclusion deletes one of the caller's exclusions
func (h *ExclusionHandler) RemoveExclusion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.exclusions.RemoveExclusion(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "exclusion removed"})
}
