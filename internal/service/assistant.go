package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AmirKakon/recipe-rack/config"
	"github.com/AmirKakon/recipe-rack/internal/model"
)

const assistantCacheTTL = 24 * time.Hour

// AssistantService handles the AI helper flows. Every flow is a stateless
// prompt-templated call against a hosted chat-completions API; on any
// transport or parse failure the flow returns a safe default matching its
// output schema instead of an error.
type AssistantService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
}

// NewAssistantService creates a new AssistantService instance. The redis
// client is optional; with nil, responses are simply not cached.
func NewAssistantService(cfg *config.Config, redisClient *redis.Client) (*AssistantService, error) {
	if cfg.AssistantAPIKey == "" {
		return nil, fmt.Errorf("assistant API key must be set")
	}

	return &AssistantService{
		apiKey: cfg.AssistantAPIKey,
		apiURL: cfg.AssistantAPIURL,
		model:  cfg.AssistantModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		redis: redisClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the request body for the chat-completions API.
type completionRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// completionResponse is the response body from the chat-completions API.
type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// SuggestNameInput is the input for the name suggestion flow.
type SuggestNameInput struct {
	Ingredients string `json:"ingredients"`
	Cuisine     string `json:"cuisine"`
}

// SuggestNameOutput is the output of the name suggestion flow.
type SuggestNameOutput struct {
	RecipeName string `json:"recipeName"`
}

// SuggestName suggests a creative recipe name for the given ingredients and
// cuisine.
func (s *AssistantService) SuggestName(ctx context.Context, in SuggestNameInput) SuggestNameOutput {
	var out SuggestNameOutput
	prompt := fmt.Sprintf(
		"You are a creative recipe name generator. Given the ingredients and cuisine, "+
			"suggest a creative and appealing name for the recipe.\n\n"+
			"Ingredients: %s\nCuisine: %s\n\n"+
			"Respond with JSON: {\"recipeName\": \"string\"}",
		in.Ingredients, in.Cuisine)
	if err := s.complete(ctx, "suggestName", in, prompt, &out); err != nil {
		log.Printf("Assistant suggestName failed: %v", err)
		return SuggestNameOutput{}
	}
	return out
}

// SuggestDetailsInput is the input for the detail suggestion flow.
type SuggestDetailsInput struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// SuggestDetailsOutput is the output of the detail suggestion flow. Fields
// the model cannot confidently fill are empty strings.
type SuggestDetailsOutput struct {
	SuggestedPrepTime    string `json:"suggestedPrepTime"`
	SuggestedCookTime    string `json:"suggestedCookTime"`
	SuggestedServingSize string `json:"suggestedServingSize"`
}

// SuggestDetails suggests prep time, cook time, and serving size for a
// recipe.
func (s *AssistantService) SuggestDetails(ctx context.Context, in SuggestDetailsInput) SuggestDetailsOutput {
	var out SuggestDetailsOutput
	prompt := fmt.Sprintf(
		"You are an expert culinary assistant. Based on the provided recipe title, "+
			"ingredients, and instructions, suggest a reasonable preparation time, cooking "+
			"time, and serving size.\n\nRecipe Title: %s\nIngredients: %s\nInstructions: %s\n\n"+
			"If you cannot confidently suggest a value for a field, use an empty string for "+
			"that field. Do not make up values if unsure. Respond with JSON: "+
			"{\"suggestedPrepTime\": \"string\", \"suggestedCookTime\": \"string\", \"suggestedServingSize\": \"string\"}",
		in.Title, in.Ingredients, in.Instructions)
	if err := s.complete(ctx, "suggestDetails", in, prompt, &out); err != nil {
		log.Printf("Assistant suggestDetails failed: %v", err)
		return SuggestDetailsOutput{}
	}
	return out
}

// ExtractedRecipe is the output of both extraction flows. Fields the model
// cannot identify are empty strings or empty arrays. Cuisine is a
// comma-separated string of tags, matching the form's tag input.
type ExtractedRecipe struct {
	Title        string             `json:"title"`
	Ingredients  []model.Ingredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Cuisine      string             `json:"cuisine"`
	PrepTime     string             `json:"prepTime"`
	CookTime     string             `json:"cookTime"`
	ServingSize  string             `json:"servingSize"`
}

func emptyExtractedRecipe() ExtractedRecipe {
	return ExtractedRecipe{
		Ingredients:  []model.Ingredient{},
		Instructions: []string{},
	}
}

const extractionFormat = "Respond with JSON: {\"title\": \"string\", " +
	"\"ingredients\": [{\"name\": \"string\", \"quantity\": \"string\"}], " +
	"\"instructions\": [\"string\"], \"cuisine\": \"comma-separated tags\", " +
	"\"prepTime\": \"string\", \"cookTime\": \"string\", \"servingSize\": \"string\"}. " +
	"Use \"\" for any field that is not found or unclear, and [] when ingredients or " +
	"instructions cannot be clearly identified."

// ExtractFromImageInput is the input for the image extraction flow.
type ExtractFromImageInput struct {
	PhotoDataURI string `json:"photoDataUri"`
}

// ExtractFromImage extracts a structured recipe from a photo supplied as a
// data URI.
func (s *AssistantService) ExtractFromImage(ctx context.Context, in ExtractFromImageInput) ExtractedRecipe {
	out := emptyExtractedRecipe()
	prompt := fmt.Sprintf(
		"You are an expert at reading recipes from photos. Extract the recipe from the "+
			"following image.\n\nImage: %s\n\n%s",
		in.PhotoDataURI, extractionFormat)
	if err := s.complete(ctx, "extractFromImage", in, prompt, &out); err != nil {
		log.Printf("Assistant extractFromImage failed: %v", err)
		return emptyExtractedRecipe()
	}
	return normalizeExtracted(out)
}

// ExtractFromURLInput is the input for the URL extraction flow.
type ExtractFromURLInput struct {
	URL string `json:"url"`
}

// ExtractFromURL fetches a web page and extracts a structured recipe from
// its content.
func (s *AssistantService) ExtractFromURL(ctx context.Context, in ExtractFromURLInput) ExtractedRecipe {
	page, err := s.fetchPage(ctx, in.URL)
	if err != nil {
		log.Printf("Assistant extractFromUrl failed to fetch %s: %v", in.URL, err)
		return emptyExtractedRecipe()
	}

	out := emptyExtractedRecipe()
	prompt := fmt.Sprintf(
		"You are an expert at reading recipes from web pages. Extract the recipe from "+
			"the following page content.\n\nURL: %s\nContent:\n%s\n\n%s",
		in.URL, page, extractionFormat)
	if err := s.complete(ctx, "extractFromUrl", in, prompt, &out); err != nil {
		log.Printf("Assistant extractFromUrl failed: %v", err)
		return emptyExtractedRecipe()
	}
	return normalizeExtracted(out)
}

// SuggestedIngredient is one ingredient in a new recipe suggestion.
type SuggestedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// ExistingRecipeInfo is the slice of the collection shown to the model when
// asking for a suggestion.
type ExistingRecipeInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Cuisines []string `json:"cuisines,omitempty"`
}

// SuggestRecipeInput is the input for the recipe suggestion flow.
type SuggestRecipeInput struct {
	UserInput       string               `json:"userInput"`
	ExistingRecipes []ExistingRecipeInfo `json:"existingRecipes"`
}

// SuggestRecipeOutput is the output of the recipe suggestion flow. The
// suggestion is either one of the existing recipes, a newly generated one,
// or none; Reasoning is always populated.
type SuggestRecipeOutput struct {
	SuggestionType        string                `json:"suggestionType"`
	ExistingRecipeID      string                `json:"existingRecipeId,omitempty"`
	ExistingRecipeTitle   string                `json:"existingRecipeTitle,omitempty"`
	NewRecipeTitle        string                `json:"newRecipeTitle,omitempty"`
	NewRecipeIngredients  []SuggestedIngredient `json:"newRecipeIngredients,omitempty"`
	NewRecipeInstructions []string              `json:"newRecipeInstructions,omitempty"`
	NewRecipeCuisine      string                `json:"newRecipeCuisine,omitempty"`
	NewRecipePrepTime     string                `json:"newRecipePrepTime,omitempty"`
	NewRecipeCookTime     string                `json:"newRecipeCookTime,omitempty"`
	NewRecipeServingSize  string                `json:"newRecipeServingSize,omitempty"`
	Reasoning             string                `json:"reasoning"`
}

// SuggestRecipe suggests a recipe for the user's request, preferring a match
// from the existing collection before generating a new one.
func (s *AssistantService) SuggestRecipe(ctx context.Context, in SuggestRecipeInput) SuggestRecipeOutput {
	existing, err := json.Marshal(in.ExistingRecipes)
	if err != nil {
		existing = []byte("[]")
	}

	var out SuggestRecipeOutput
	prompt := fmt.Sprintf(
		"You are a helpful culinary assistant. The user wants a recipe suggestion.\n"+
			"User's request: %q\n\nConsider these existing recipes first:\n%s\n\n"+
			"If one of the existing recipes matches the request, suggest it. Otherwise "+
			"generate a new recipe, or report that no suitable suggestion can be made.\n"+
			"Respond with JSON: {\"suggestionType\": \"existing\"|\"new\"|\"none\", "+
			"\"existingRecipeId\": \"string\", \"existingRecipeTitle\": \"string\", "+
			"\"newRecipeTitle\": \"string\", \"newRecipeIngredients\": [{\"name\": \"string\", "+
			"\"quantity\": \"string\"}], \"newRecipeInstructions\": [\"string\"], "+
			"\"newRecipeCuisine\": \"comma-separated tags\", \"newRecipePrepTime\": \"string\", "+
			"\"newRecipeCookTime\": \"string\", \"newRecipeServingSize\": \"string\", "+
			"\"reasoning\": \"string\"}. The reasoning field must always be populated.",
		in.UserInput, existing)
	if err := s.complete(ctx, "suggestRecipe", in, prompt, &out); err != nil {
		log.Printf("Assistant suggestRecipe failed: %v", err)
		return SuggestRecipeOutput{
			SuggestionType: "none",
			Reasoning:      "The recipe assistant is currently unavailable.",
		}
	}
	if out.SuggestionType == "" {
		out.SuggestionType = "none"
	}
	if out.Reasoning == "" {
		out.Reasoning = "No reasoning provided."
	}
	return out
}

// complete runs one prompt through the chat-completions API in JSON mode,
// decoding the reply into out. Replies are cached in redis keyed by the flow
// name and input payload.
func (s *AssistantService) complete(ctx context.Context, flow string, input interface{}, prompt string, out interface{}) error {
	cacheKey := s.cacheKey(flow, input)
	if s.redis != nil && cacheKey != "" {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if json.Unmarshal([]byte(cached), out) == nil {
				return nil
			}
		}
	}

	reqBody := completionRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call assistant API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assistant API returned status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return fmt.Errorf("failed to decode assistant response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return fmt.Errorf("assistant returned no choices")
	}

	content := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("assistant reply did not match the expected schema: %w", err)
	}

	if s.redis != nil && cacheKey != "" {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, assistantCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache assistant %s response: %v", flow, err)
			}
		}
	}
	return nil
}

func (s *AssistantService) cacheKey(flow string, input interface{}) string {
	raw, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return "assistant:" + flow + ":" + hex.EncodeToString(sum[:])
}

// fetchPage downloads a page and returns its body, truncated to keep the
// prompt within a sane size.
func (s *AssistantService) fetchPage(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("unsupported URL scheme")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}
	const maxPageBytes = 200 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// normalizeExtracted ensures the extraction output always carries arrays,
// mirroring the schema's "[] when unclear" contract.
func normalizeExtracted(r ExtractedRecipe) ExtractedRecipe {
	if r.Ingredients == nil {
		r.Ingredients = []model.Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	return r
}
