package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmirKakon/recipe-rack/internal/model"
	"github.com/AmirKakon/recipe-rack/internal/service"
)

// RecipeHandler exposes the recipe store over HTTP. It performs only
// structural validation of requests; business rules are enforced at the form
// boundary before requests are made.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes mounts the five recipe endpoints. The write limiter, when
// non-nil, guards the mutating routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")

	recipes.GET("/get/:id", h.GetRecipe)
	recipes.GET("/getAll", h.GetAllRecipes)

	writes := recipes.Group("")
	if writeLimit != nil {
		writes.Use(writeLimit)
	}
	writes.POST("/create", h.CreateRecipe)
	writes.PUT("/update/:id", h.UpdateRecipe)
	writes.DELETE("/delete/:id", h.DeleteRecipe)
}

// validRecipeDoc checks the structural requirements: a non-empty title and
// array-typed ingredients and instructions.
func validRecipeDoc(doc model.Document) bool {
	title, ok := doc["title"].(string)
	if !ok || title == "" {
		return false
	}
	if _, ok := doc["ingredients"].([]interface{}); !ok {
		return false
	}
	if _, ok := doc["instructions"].([]interface{}); !ok {
		return false
	}
	return true
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil || !validRecipeDoc(doc) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}

	id, err := h.recipes.CreateRecipe(c.Request.Context(), doc)
	if err != nil {
		log.Printf("Error adding recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}

	doc, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("Error getting recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": doc})
}

func (h *RecipeHandler) GetAllRecipes(c *gin.Context) {
	docs, err := h.recipes.GetAllRecipes(c.Request.Context())
	if err != nil {
		log.Printf("Error getting all recipes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting all recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Success",
		"data":   gin.H{"recipes": docs},
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil || id == "" || !validRecipeDoc(doc) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}

	doc["id"] = id
	if !h.recipes.UpdateRecipe(c.Request.Context(), id, doc) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Failed", "msg": "Recipe failed to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "msg": "Recipe Updated"})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields"})
		return
	}

	if !h.recipes.DeleteRecipe(c.Request.Context(), id) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Failed", "msg": "Recipe failed to delete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "msg": "Recipe Deleted"})
}
