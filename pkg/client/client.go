// Package client is the calling side of the recipe API: it shapes validated
// form data into storage payloads, applies inbound normalization to every
// fetched document, and maps failure responses to short human-readable
// errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AmirKakon/recipe-rack/internal/model"
	"github.com/AmirKakon/recipe-rack/internal/normalize"
)

// Client calls the recipe API. Safe for concurrent use; it performs no
// request deduplication, so at most one in-flight mutation per user action
// is the caller's discipline.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRecipe validates the form, shapes it into a storage payload and
// creates it, returning the new recipe's id.
func (c *Client) CreateRecipe(ctx context.Context, form model.RecipeForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/recipes/create", normalize.Outbound(form), &result)
	if err != nil {
		return "", err
	}
	return result.ID, nil
}

// GetRecipe fetches one recipe, normalized to the canonical shape.
func (c *Client) GetRecipe(ctx context.Context, id string) (model.Recipe, error) {
	var result struct {
		Status string         `json:"status"`
		Data   model.Document `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/recipes/get/"+id, nil, &result); err != nil {
		return model.Recipe{}, err
	}
	return model.RecipeFromDocument(normalize.Inbound(result.Data))
}

// ListRecipes fetches every recipe, each normalized to the canonical shape.
// The server returns them sorted by title.
func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var result struct {
		Status string `json:"status"`
		Data   struct {
			Recipes []model.Document `json:"recipes"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/recipes/getAll", nil, &result); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0, len(result.Data.Recipes))
	for _, doc := range result.Data.Recipes {
		recipe, err := model.RecipeFromDocument(normalize.Inbound(doc))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// UpdateRecipe validates the form and replaces the recipe at id.
func (c *Client) UpdateRecipe(ctx context.Context, id string, form model.RecipeForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/recipes/update/"+id, normalize.Outbound(form), nil)
}

// DeleteRecipe deletes the recipe at id.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/delete/"+id, nil, nil)
}

// do sends one request and decodes a 2xx response into out. Non-2xx
// responses become an error with the message extracted from the body when
// available, else the HTTP status text.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s", errorMessage(raw, resp.Status))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls a display-ready message out of an error response body,
// falling back to the HTTP status text.
func errorMessage(body []byte, status string) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "msg", "message"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return status
}
