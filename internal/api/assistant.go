package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AmirKakon/recipe-rack/internal/service"
)

// AssistantHandler exposes the AI helper flows. Model failures never surface
// as errors here; the service returns schema-shaped defaults instead.
type AssistantHandler struct {
	assistant *service.AssistantService
}

func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// RegisterRoutes mounts the assistant endpoints. The limiter, when non-nil,
// guards every route in the group.
func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	ai := router.Group("/ai")
	if limit != nil {
		ai.Use(limit)
	}

	ai.POST("/suggestName", h.SuggestName)
	ai.POST("/suggestDetails", h.SuggestDetails)
	ai.POST("/extractFromImage", h.ExtractFromImage)
	ai.POST("/extractFromUrl", h.ExtractFromURL)
	ai.POST("/suggestRecipe", h.SuggestRecipe)
}

func (h *AssistantHandler) SuggestName(c *gin.Context) {
	var in service.SuggestNameInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Ingredients) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}
	c.JSON(http.StatusOK, h.assistant.SuggestName(c.Request.Context(), in))
}

func (h *AssistantHandler) SuggestDetails(c *gin.Context) {
	var in service.SuggestDetailsInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}
	c.JSON(http.StatusOK, h.assistant.SuggestDetails(c.Request.Context(), in))
}

func (h *AssistantHandler) ExtractFromImage(c *gin.Context) {
	var in service.ExtractFromImageInput
	if err := c.ShouldBindJSON(&in); err != nil || !strings.HasPrefix(in.PhotoDataURI, "data:") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}
	c.JSON(http.StatusOK, h.assistant.ExtractFromImage(c.Request.Context(), in))
}

func (h *AssistantHandler) ExtractFromURL(c *gin.Context) {
	var in service.ExtractFromURLInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}
	c.JSON(http.StatusOK, h.assistant.ExtractFromURL(c.Request.Context(), in))
}

func (h *AssistantHandler) SuggestRecipe(c *gin.Context) {
	var in service.SuggestRecipeInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.UserInput) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}
	c.JSON(http.StatusOK, h.assistant.SuggestRecipe(c.Request.Context(), in))
}
