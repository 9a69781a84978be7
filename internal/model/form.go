package model

import (
	"fmt"
	"strings"
)

// Field length limits enforced at the form boundary.
const (
	MaxTitleLength       = 150
	MaxIngredientName    = 100
	MaxIngredientAmount  = 50
	MaxInstructionLength = 1000
	MaxCuisineTagsLength = 200
)

// IngredientForm is one ingredient row as entered in the form. ID is empty
// for ingredients added in this session and preserved for existing ones.
type IngredientForm struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// RecipeForm is the validated form representation of a recipe. Cuisine holds
// the comma-separated tag input; the outbound normalizer splits it.
type RecipeForm struct {
	Title        string           `json:"title"`
	Ingredients  []IngredientForm `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	Cuisine      string           `json:"cuisine,omitempty"`
	PrepTime     string           `json:"prepTime,omitempty"`
	CookTime     string           `json:"cookTime,omitempty"`
	ServingSize  string           `json:"servingSize,omitempty"`
}

// Validate enforces the form-boundary invariants: non-empty bounded title,
// at least one ingredient and one instruction step, all within length limits.
// The store itself never validates content; this is the only gate.
func (f RecipeForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(f.Title) > MaxTitleLength {
		return fmt.Errorf("title too long (max %d characters)", MaxTitleLength)
	}
	if len(f.Ingredients) == 0 {
		return fmt.Errorf("at least one ingredient is required")
	}
	for i, ing := range f.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredient %d: name is required", i+1)
		}
		if len(ing.Name) > MaxIngredientName {
			return fmt.Errorf("ingredient %d: name too long (max %d characters)", i+1, MaxIngredientName)
		}
		if strings.TrimSpace(ing.Quantity) == "" {
			return fmt.Errorf("ingredient %d: quantity is required", i+1)
		}
		if len(ing.Quantity) > MaxIngredientAmount {
			return fmt.Errorf("ingredient %d: quantity too long (max %d characters)", i+1, MaxIngredientAmount)
		}
	}
	if len(f.Instructions) == 0 {
		return fmt.Errorf("at least one instruction step is required")
	}
	for i, step := range f.Instructions {
		if strings.TrimSpace(step) == "" {
			return fmt.Errorf("instruction step %d cannot be empty", i+1)
		}
		if len(step) > MaxInstructionLength {
			return fmt.Errorf("instruction step %d too long (max %d characters)", i+1, MaxInstructionLength)
		}
	}
	if len(f.Cuisine) > MaxCuisineTagsLength {
		return fmt.Errorf("cuisine tags too long (max %d characters)", MaxCuisineTagsLength)
	}
	return nil
}
