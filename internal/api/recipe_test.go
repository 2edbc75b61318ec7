package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func soupRequest(public bool) types.RecipeRequest {
	cook := 35
	servings := 4
	return types.RecipeRequest{
		Title:              "Roasted Tomato Soup",
		Description:        "Slow roasted tomatoes blended with basil.",
		Instructions:       "Roast the tomatoes, blend with stock, season and serve.",
		CookingTimeMinutes: &cook,
		Servings:           &servings,
		Category:           "SOUP",
		Difficulty:         "EASY",
		IsPublic:           &public,
		Tags:               []string{"comfort", "vegetarian"},
		Ingredients: []types.IngredientRequest{
			{Name: "tomatoes", Quantity: 1, Unit: "KILOGRAM", Category: "VEGETABLES"},
			{Name: "basil", Quantity: 1, Unit: "BUNCH", Category: "HERBS"},
		},
	}
}

func createRecipe(t *testing.T, r *gin.Engine, token string, req types.RecipeRequest) models.Recipe {
	t.Helper()
	rec := postJSON(r, "/api/v1/recipes", req, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipe))
	return recipe
}

func TestCreateRecipe(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	recipe := createRecipe(t, r, owner.AccessToken, soupRequest(true))
	assert.Equal(t, "Roasted Tomato Soup", recipe.Title)
	assert.Equal(t, owner.User.ID, recipe.OwnerID)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 1, recipe.Ingredients[0].OrderPosition)
	assert.Equal(t, 2, recipe.Ingredients[1].OrderPosition)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := postJSON(r, "/api/v1/recipes", soupRequest(true), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateRecipeRejectsUnknownEnum(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	req := soupRequest(true)
	req.Category = "MIDNIGHT_SNACK"
	rec := postJSON(r, "/api/v1/recipes", req, owner.AccessToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category")
}

func TestGetRecipeVisibility(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")

	private := createRecipe(t, r, owner.AccessToken, soupRequest(false))
	path := "/api/v1/recipes/" + private.ID.String()

	assert.Equal(t, http.StatusOK, getJSON(r, path, owner.AccessToken).Code)
	assert.Equal(t, http.StatusForbidden, getJSON(r, path, stranger.AccessToken).Code)
	assert.Equal(t, http.StatusForbidden, getJSON(r, path, "").Code)
}

func TestGetPublicEndpointHidesPrivate(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	private := createRecipe(t, r, owner.AccessToken, soupRequest(false))
	path := "/api/v1/recipes/" + private.ID.String() + "/public"

	// The public endpoint never serves private recipes, not even to the owner.
	assert.Equal(t, http.StatusForbidden, getJSON(r, path, owner.AccessToken).Code)
}

func TestGetMissingRecipe(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := getJSON(r, "/api/v1/recipes/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = getJSON(r, "/api/v1/recipes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRecipeOwnership(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")

	recipe := createRecipe(t, r, owner.AccessToken, soupRequest(true))
	path := "/api/v1/recipes/" + recipe.ID.String()

	updated := soupRequest(true)
	updated.Title = "Roasted Tomato and Basil Soup"

	rec := doJSON(r, http.MethodPut, path, updated, stranger.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodPut, path, updated, owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Roasted Tomato and Basil Soup")
}

func TestDeleteRecipe(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")

	recipe := createRecipe(t, r, owner.AccessToken, soupRequest(true))
	path := "/api/v1/recipes/" + recipe.ID.String()

	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodDelete, path, nil, stranger.AccessToken).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, path, nil, owner.AccessToken).Code)
	assert.Equal(t, http.StatusNotFound, getJSON(r, path, owner.AccessToken).Code)
}

func TestToggleVisibilityEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	recipe := createRecipe(t, r, owner.AccessToken, soupRequest(false))
	path := "/api/v1/recipes/" + recipe.ID.String() + "/toggle-visibility"

	rec := doJSON(r, http.MethodPost, path, nil, owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled models.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.IsPublic)
}

func TestListPublicExcludesPrivate(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	createRecipe(t, r, owner.AccessToken, soupRequest(true))
	private := soupRequest(false)
	private.Title = "Secret Family Soup"
	createRecipe(t, r, owner.AccessToken, private)

	rec := getJSON(r, "/api/v1/recipes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[models.Recipe]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Roasted Tomato Soup", page.Content[0].Title)
}

func TestListMine(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	other := registerUser(t, r, "bob")

	createRecipe(t, r, owner.AccessToken, soupRequest(true))
	createRecipe(t, r, owner.AccessToken, soupRequest(false))

	rec := getJSON(r, "/api/v1/recipes/my", owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[models.Recipe]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.TotalElements)

	rec = getJSON(r, "/api/v1/recipes/my", other.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestSearchEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	createRecipe(t, r, owner.AccessToken, soupRequest(true))
	pasta := soupRequest(true)
	pasta.Title = "Cacio e Pepe"
	pasta.Description = "Pecorino and black pepper spaghetti."
	pasta.Category = "PASTA"
	createRecipe(t, r, owner.AccessToken, pasta)

	rec := getJSON(r, "/api/v1/recipes/search?term=tomato", owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[models.Recipe]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Roasted Tomato Soup", page.Content[0].Title)

	rec = getJSON(r, "/api/v1/recipes/search?category=PASTA", owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Cacio e Pepe", page.Content[0].Title)

	assert.Equal(t, http.StatusUnauthorized, getJSON(r, "/api/v1/recipes/search?term=tomato", "").Code)
}

func TestSearchByIngredientsEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	createRecipe(t, r, owner.AccessToken, soupRequest(true))

	rec := getJSON(r, "/api/v1/recipes/search/ingredients?ingredient=Basil", owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[models.Recipe]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.TotalElements)

	assert.Equal(t, http.StatusBadRequest, getJSON(r, "/api/v1/recipes/search/ingredients", owner.AccessToken).Code)
}

func TestStatisticsEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")

	createRecipe(t, r, owner.AccessToken, soupRequest(true))
	createRecipe(t, r, owner.AccessToken, soupRequest(false))

	rec := getJSON(r, "/api/v1/recipes/statistics", owner.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.RecipeStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalRecipes)
	assert.Equal(t, int64(1), stats.PublicRecipes)
	assert.Equal(t, int64(1), stats.PrivateRecipes)
}

func TestListByCategoryEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	createRecipe(t, r, owner.AccessToken, soupRequest(true))

	rec := getJSON(r, "/api/v1/recipes/category/SOUP", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[models.Recipe]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.TotalElements)

	assert.Equal(t, http.StatusBadRequest, getJSON(r, "/api/v1/recipes/category/BRUNCHISH", "").Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	r, _ := setupTestServer(t)
	owner := registerUser(t, r, "alice")
	recipe := createRecipe(t, r, owner.AccessToken, soupRequest(true))

	rec := doJSON(r, http.MethodPost, "/api/v1/recipes/"+recipe.ID.String()+"/image", nil, owner.AccessToken)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
