package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmirKakon/recipe-rack/config"
)

// fakeCompletions serves a chat-completions reply whose message content is
// the given JSON payload.
func fakeCompletions(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		reply := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
}

func newTestAssistant(t *testing.T, apiURL string) *AssistantService {
	t.Helper()
	svc, err := NewAssistantService(&config.Config{
		AssistantAPIKey: "test-key",
		AssistantAPIURL: apiURL,
		AssistantModel:  "test-model",
	}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewAssistantServiceRequiresKey(t *testing.T) {
	_, err := NewAssistantService(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestSuggestName(t *testing.T) {
	upstream := fakeCompletions(t, `{"recipeName": "Spicy Garlic Noodles"}`)
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	out := svc.SuggestName(context.Background(), SuggestNameInput{
		Ingredients: "noodles, garlic, chili oil",
		Cuisine:     "Asian",
	})
	assert.Equal(t, "Spicy Garlic Noodles", out.RecipeName)
}

func TestSuggestDetails(t *testing.T) {
	upstream := fakeCompletions(t, `{"suggestedPrepTime": "15 minutes", "suggestedCookTime": "", "suggestedServingSize": "4 servings"}`)
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	out := svc.SuggestDetails(context.Background(), SuggestDetailsInput{Title: "Stew"})
	assert.Equal(t, "15 minutes", out.SuggestedPrepTime)
	assert.Equal(t, "", out.SuggestedCookTime)
	assert.Equal(t, "4 servings", out.SuggestedServingSize)
}

func TestExtractFromImage(t *testing.T) {
	upstream := fakeCompletions(t, `{
		"title": "Grandma's Pancakes",
		"ingredients": [{"name": "Flour", "quantity": "200g"}],
		"instructions": ["Mix.", "Fry."],
		"cuisine": "Breakfast, Quick",
		"prepTime": "5 minutes",
		"cookTime": "10 minutes",
		"servingSize": "2 servings"
	}`)
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	out := svc.ExtractFromImage(context.Background(), ExtractFromImageInput{
		PhotoDataURI: "data:image/png;base64,AAAA",
	})
	assert.Equal(t, "Grandma's Pancakes", out.Title)
	require.Len(t, out.Ingredients, 1)
	assert.Equal(t, "Flour", out.Ingredients[0].Name)
	assert.Equal(t, []string{"Mix.", "Fry."}, out.Instructions)
	assert.Equal(t, "Breakfast, Quick", out.Cuisine)
}

func TestFlowsReturnSafeDefaultsOnUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	ctx := context.Background()

	assert.Equal(t, SuggestNameOutput{}, svc.SuggestName(ctx, SuggestNameInput{Ingredients: "x"}))
	assert.Equal(t, SuggestDetailsOutput{}, svc.SuggestDetails(ctx, SuggestDetailsInput{Title: "x"}))

	extracted := svc.ExtractFromImage(ctx, ExtractFromImageInput{PhotoDataURI: "data:x"})
	assert.Equal(t, "", extracted.Title)
	assert.NotNil(t, extracted.Ingredients)
	assert.NotNil(t, extracted.Instructions)

	suggestion := svc.SuggestRecipe(ctx, SuggestRecipeInput{UserInput: "dinner"})
	assert.Equal(t, "none", suggestion.SuggestionType)
	assert.NotEmpty(t, suggestion.Reasoning)
}

func TestFlowsReturnSafeDefaultsOnMalformedReply(t *testing.T) {
	upstream := fakeCompletions(t, `not json at all`)
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	out := svc.SuggestName(context.Background(), SuggestNameInput{Ingredients: "x"})
	assert.Equal(t, SuggestNameOutput{}, out)
}

func TestSuggestRecipeExisting(t *testing.T) {
	upstream := fakeCompletions(t, `{
		"suggestionType": "existing",
		"existingRecipeId": "r1",
		"existingRecipeTitle": "Apple Pie",
		"reasoning": "An existing recipe matches the request."
	}`)
	defer upstream.Close()

	svc := newTestAssistant(t, upstream.URL)
	out := svc.SuggestRecipe(context.Background(), SuggestRecipeInput{
		UserInput: "something with apples",
		ExistingRecipes: []ExistingRecipeInfo{
			{ID: "r1", Title: "Apple Pie", Cuisines: []string{"American"}},
		},
	})
	assert.Equal(t, "existing", out.SuggestionType)
	assert.Equal(t, "r1", out.ExistingRecipeID)
	assert.NotEmpty(t, out.Reasoning)
}
