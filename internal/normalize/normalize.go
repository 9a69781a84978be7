// Package normalize reconciles the historical recipe record shapes into the
// canonical form. Older records carry a singular "cuisine" string instead of
// the "cuisines" array, and some stored "instructions" as one multi-line
// string instead of a list of steps. All back-compat coercion lives here;
// the dual shapes never leak past this package.
package normalize

import (
	"strings"

	"github.com/google/uuid"

	"github.com/AmirKakon/recipe-rack/internal/model"
)

// Inbound converts a raw stored document into the canonical shape. The output
// always has "cuisines" and "instructions" as string arrays and never carries
// the singular "cuisine" key. Optional detail fields are present only when
// they hold a non-empty value, so callers can tell unset from blank.
// Inbound never fails; malformed optional fields degrade to empty containers.
func Inbound(raw model.Document) model.Document {
	doc := make(model.Document, len(raw))
	for k, v := range raw {
		if k == "cuisine" || k == "cuisines" || k == "instructions" ||
			k == "prepTime" || k == "cookTime" || k == "servingSize" {
			continue
		}
		doc[k] = v
	}

	if cuisines, ok := stringSlice(raw["cuisines"]); ok {
		doc["cuisines"] = cuisines
	} else if single, ok := raw["cuisine"].(string); ok && strings.TrimSpace(single) != "" {
		doc["cuisines"] = []string{strings.TrimSpace(single)}
	} else {
		doc["cuisines"] = []string{}
	}

	if steps, ok := stringSlice(raw["instructions"]); ok {
		doc["instructions"] = steps
	} else if block, ok := raw["instructions"].(string); ok && block != "" {
		doc["instructions"] = []string{block}
	} else {
		doc["instructions"] = []string{}
	}

	for _, key := range []string{"prepTime", "cookTime", "servingSize"} {
		if s, ok := raw[key].(string); ok && s != "" {
			doc[key] = s
		}
	}

	return doc
}

// Outbound converts validated form data into a storage payload. Cuisine tags
// are split on commas preserving first-seen order (duplicates are legal),
// ingredients without an id get a fresh one, and the optional detail fields
// always appear, defaulted to "". The payload never carries the legacy
// singular "cuisine" key.
func Outbound(form model.RecipeForm) model.Document {
	ingredients := make([]model.Ingredient, 0, len(form.Ingredients))
	for _, ing := range form.Ingredients {
		id := ing.ID
		if id == "" {
			id = uuid.NewString()
		}
		ingredients = append(ingredients, model.Ingredient{
			ID:       id,
			Name:     ing.Name,
			Quantity: ing.Quantity,
		})
	}

	instructions := form.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return model.Document{
		"title":        form.Title,
		"ingredients":  ingredients,
		"instructions": instructions,
		"cuisines":     SplitCuisineTags(form.Cuisine),
		"prepTime":     form.PrepTime,
		"cookTime":     form.CookTime,
		"servingSize":  form.ServingSize,
	}
}

// SplitCuisineTags splits the comma-separated tag input, trimming each token
// and dropping empty ones. Order is preserved and duplicates are kept.
func SplitCuisineTags(input string) []string {
	tags := []string{}
	for _, tok := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(tok); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// stringSlice accepts both decoded-JSON ([]interface{}) and native []string
// arrays, so Inbound applied to its own output sees the same values.
func stringSlice(v interface{}) ([]string, bool) {
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
