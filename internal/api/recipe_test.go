package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AmirKakon/recipe-rack/internal/model"
	"github.com/AmirKakon/recipe-rack/internal/service"
)

func setupRecipeTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.RecipeRecord{}))

	router := gin.New()
	NewRecipeHandler(service.NewRecipeService(db)).RegisterRoutes(router.Group("/api"), nil)
	return router
}

func recipeBody() map[string]interface{} {
	return map[string]interface{}{
		"title": "Test Recipe",
		"ingredients": []map[string]interface{}{
			{"id": "i1", "name": "ingredient1", "quantity": "1 cup"},
		},
		"instructions": []string{"step1", "step2"},
		"cuisines":     []string{"Test Cuisine"},
		"prepTime":     "10 minutes",
		"cookTime":     "",
		"servingSize":  "2 servings",
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "POST", "/api/recipes/create", recipeBody())
	assert.Equal(t, 200, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, router, "GET", "/api/recipes/get/"+created.ID, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Success", response.Status)
	assert.Equal(t, "Test Recipe", response.Data["title"])
	assert.Equal(t, created.ID, response.Data["id"])
	assert.Equal(t, []interface{}{"step1", "step2"}, response.Data["instructions"])
	ingredients, ok := response.Data["ingredients"].([]interface{})
	require.True(t, ok)
	assert.Len(t, ingredients, 1)
}

func TestCreateRecipeValidationRejection(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "POST", "/api/recipes/create", map[string]interface{}{
		"title":        "",
		"ingredients":  []string{},
		"instructions": []string{},
	})
	assert.Equal(t, 400, w.Code)

	// The rejected create must not write anything.
	w = doJSON(t, router, "GET", "/api/recipes/getAll", nil)
	assert.Equal(t, 200, w.Code)
	var response struct {
		Data struct {
			Recipes []interface{} `json:"recipes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Data.Recipes)
}

func TestCreateRecipeRejectsNonArrayFields(t *testing.T) {
	router := setupRecipeTestRouter(t)

	body := recipeBody()
	body["instructions"] = "just one string"
	w := doJSON(t, router, "POST", "/api/recipes/create", body)
	assert.Equal(t, 400, w.Code)
}

func TestGetRecipeNotFound(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "GET", "/api/recipes/get/missing", nil)
	assert.Equal(t, 404, w.Code)
}

func TestGetAllRecipesSorted(t *testing.T) {
	router := setupRecipeTestRouter(t)

	for _, title := range []string{"Zucchini Soup", "Apple Pie", "Banana Bread"} {
		body := recipeBody()
		body["title"] = title
		w := doJSON(t, router, "POST", "/api/recipes/create", body)
		require.Equal(t, 200, w.Code)
	}

	w := doJSON(t, router, "GET", "/api/recipes/getAll", nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Recipes []map[string]interface{} `json:"recipes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data.Recipes, 3)
	assert.Equal(t, "Apple Pie", response.Data.Recipes[0]["title"])
	assert.Equal(t, "Banana Bread", response.Data.Recipes[1]["title"])
	assert.Equal(t, "Zucchini Soup", response.Data.Recipes[2]["title"])
}

func TestUpdateRecipe(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "POST", "/api/recipes/create", recipeBody())
	require.Equal(t, 200, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body := recipeBody()
	body["title"] = "Updated Recipe"
	w = doJSON(t, router, "PUT", "/api/recipes/update/"+created.ID, body)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Success")

	w = doJSON(t, router, "GET", "/api/recipes/get/"+created.ID, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Updated Recipe")
}

func TestUpdateRecipeMissingIDFails(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "PUT", "/api/recipes/update/nonexistent", recipeBody())
	assert.Equal(t, 400, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Failed", response["status"])

	// The failed update must not create the document.
	w = doJSON(t, router, "GET", "/api/recipes/get/nonexistent", nil)
	assert.Equal(t, 404, w.Code)
}

func TestUpdateRecipeValidationRejection(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "PUT", "/api/recipes/update/some-id", map[string]interface{}{
		"title": "No arrays here",
	})
	assert.Equal(t, 400, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "POST", "/api/recipes/create", recipeBody())
	require.Equal(t, 200, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "DELETE", "/api/recipes/delete/"+created.ID, nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Success")

	w = doJSON(t, router, "GET", "/api/recipes/get/"+created.ID, nil)
	assert.Equal(t, 404, w.Code)
}

func TestDeleteRecipeMissingIDFails(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, "DELETE", "/api/recipes/delete/missing", nil)
	assert.Equal(t, 400, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Failed", response["status"])
}
