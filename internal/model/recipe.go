package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Document is the raw recipe payload as stored in the collection. The store
// persists whatever it is given, so the shape is schema-free; legacy records
// may carry a singular "cuisine" string or string-typed "instructions".
type Document map[string]interface{}

// Value implements the driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = Document{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// RecipeRecord is the row backing one recipe document.
type RecipeRecord struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Data      Document  `gorm:"type:jsonb;not null;default:'{}'" json:"data"`
}

// TableName overrides the table name for RecipeRecord
func (RecipeRecord) TableName() string {
	return "recipes"
}

// Ingredient is a named, quantified component of a recipe.
type Ingredient struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe is the canonical in-memory representation, after normalization.
// Cuisines and Instructions are always arrays; the legacy singular "cuisine"
// never appears here.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Cuisines     []string     `json:"cuisines"`
	PrepTime     string       `json:"prepTime,omitempty"`
	CookTime     string       `json:"cookTime,omitempty"`
	ServingSize  string       `json:"servingSize,omitempty"`
}

// RecipeFromDocument decodes a normalized document into a Recipe.
func RecipeFromDocument(doc Document) (Recipe, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Recipe{}, fmt.Errorf("encode document: %w", err)
	}
	var r Recipe
	if err := json.Unmarshal(raw, &r); err != nil {
		return Recipe{}, fmt.Errorf("decode document: %w", err)
	}
	return r, nil
}
