package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/testhelpers"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

func newRecipeService(t *testing.T) (*RecipeService, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return NewRecipeService(db, zerolog.Nop()), db
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func pastaRequest() *types.RecipeRequest {
	return &types.RecipeRequest{
		Title:              "Spaghetti Carbonara",
		Description:        "Classic Roman pasta",
		Instructions:       "Boil pasta. Fry guanciale. Mix with egg and cheese.",
		CookingTimeMinutes: intPtr(15),
		PrepTimeMinutes:    intPtr(10),
		Servings:           intPtr(2),
		Category:           "PASTA",
		Difficulty:         "MEDIUM",
		IsPublic:           boolPtr(true),
		Tags:               []string{"Italian", "Pasta", "italian"},
		Ingredients: []types.IngredientRequest{
			{Name: "spaghetti", Quantity: 200, Unit: "GRAM", Category: "GRAINS"},
			{Name: "guanciale", Quantity: 100, Unit: "GRAM", Category: "MEAT"},
			{Name: "pecorino", Quantity: 50, Unit: "GRAM", Category: "DAIRY", IsOptional: boolPtr(true)},
		},
	}
}

func TestCreateRecipeAssignsPositionsAndNormalizesTags(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	recipe, err := svc.Create(ctx, pastaRequest(), owner.ID)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, recipe.OwnerID)
	assert.Equal(t, models.CategoryPasta, recipe.Category)
	assert.Equal(t, models.DifficultyMedium, recipe.Difficulty)
	assert.True(t, recipe.IsPublic)

	require.Len(t, recipe.Ingredients, 3)
	for i, ing := range recipe.Ingredients {
		assert.Equal(t, i+1, ing.OrderPosition)
	}
	assert.Equal(t, "spaghetti", recipe.Ingredients[0].Name)
	assert.True(t, recipe.Ingredients[2].IsOptional)

	// Tags are lowercased and deduplicated, first occurrence wins.
	assert.Equal(t, models.JSONBStringArray{"italian", "pasta"}, recipe.Tags)
}

func TestCreateRecipeUnknownOwner(t *testing.T) {
	svc, _ := newRecipeService(t)

	_, err := svc.Create(context.Background(), pastaRequest(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateRecipeInvalidEnums(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := testhelpers.CreateTestUser(t, db, "alice")

	req := pastaRequest()
	req.Category = "NOT_A_CATEGORY"
	req.Difficulty = "IMPOSSIBLE"

	_, err := svc.Create(context.Background(), req, owner.ID)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "category")
	assert.Contains(t, validation.Fields, "difficulty")
}

func TestGetByIDVisibility(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	stranger := testhelpers.CreateTestUser(t, db, "bob")
	private := testhelpers.CreateTestRecipe(t, db, owner, "Secret Sauce", false)
	public := testhelpers.CreateTestRecipe(t, db, owner, "Family Bread", true)

	// Owner sees both.
	_, err := svc.GetByID(ctx, private.ID, owner.ID)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, public.ID, owner.ID)
	assert.NoError(t, err)

	// Another user sees only the public one.
	_, err = svc.GetByID(ctx, private.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.GetByID(ctx, public.ID, stranger.ID)
	assert.NoError(t, err)

	// Anonymous callers are denied private recipes too.
	_, err = svc.GetByID(ctx, private.ID, uuid.Nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, uuid.New(), owner.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestGetPublicByIDIgnoresOwnership(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	private := testhelpers.CreateTestRecipe(t, db, owner, "Secret Sauce", false)

	// Even the owner is denied through the public-only path.
	_, err := svc.GetPublicByID(ctx, private.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateReplacesIngredientList(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	created, err := svc.Create(ctx, pastaRequest(), owner.ID)
	require.NoError(t, err)

	update := pastaRequest()
	update.Title = "Carbonara Revisited"
	update.Ingredients = []types.IngredientRequest{
		{Name: "rigatoni", Quantity: 250, Unit: "GRAM", Category: "GRAINS"},
		{Name: "egg yolk", Quantity: 3, Unit: "PIECE", Category: "EGGS"},
	}

	updated, err := svc.Update(ctx, created.ID, update, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carbonara Revisited", updated.Title)

	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, "rigatoni", updated.Ingredients[0].Name)
	assert.Equal(t, 1, updated.Ingredients[0].OrderPosition)
	assert.Equal(t, 2, updated.Ingredients[1].OrderPosition)

	// The old rows are gone, not orphaned.
	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateByNonOwnerDenied(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	stranger := testhelpers.CreateTestUser(t, db, "bob")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Family Bread", true)

	_, err := svc.Update(ctx, recipe.ID, pastaRequest(), stranger.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// A missing recipe looks the same as a foreign one.
	_, err = svc.Update(ctx, uuid.New(), pastaRequest(), stranger.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteCascadesToIngredients(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	created, err := svc.Create(ctx, pastaRequest(), owner.ID)
	require.NoError(t, err)

	stranger := testhelpers.CreateTestUser(t, db, "bob")
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, stranger.ID), ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, created.ID, owner.ID))

	_, err = svc.GetByID(ctx, created.ID, owner.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleVisibility(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Family Bread", false)

	toggled, err := svc.ToggleVisibility(ctx, recipe.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPublic)

	toggled, err = svc.ToggleVisibility(ctx, recipe.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublic)
}

func TestSearchCombinesFiltersWithAnd(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	quick := pastaRequest()
	quick.Title = "Quick Pasta"
	quick.CookingTimeMinutes = intPtr(10)
	_, err := svc.Create(ctx, quick, owner.ID)
	require.NoError(t, err)

	slow := pastaRequest()
	slow.Title = "Slow Ragu Pasta"
	slow.CookingTimeMinutes = intPtr(180)
	_, err = svc.Create(ctx, slow, owner.ID)
	require.NoError(t, err)

	hidden := pastaRequest()
	hidden.Title = "Hidden Pasta"
	hidden.IsPublic = boolPtr(false)
	_, err = svc.Create(ctx, hidden, owner.ID)
	require.NoError(t, err)

	page := types.NewPageable(0, 20, "", "")

	// Term matching is case-insensitive on title and description.
	result, err := svc.Search(ctx, &types.SearchRequest{Term: "pasta", PublicOnly: true}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.TotalElements)

	// Filters narrow with AND.
	result, err = svc.Search(ctx, &types.SearchRequest{
		Term:           "pasta",
		Category:       "PASTA",
		MaxCookingTime: intPtr(60),
		PublicOnly:     true,
	}, page)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalElements)
	assert.Equal(t, "Quick Pasta", result.Content[0].Title)

	// publicOnly=false widens to private recipes without caller scoping.
	result, err = svc.Search(ctx, &types.SearchRequest{Term: "pasta"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.TotalElements)
}

func TestSearchInvalidCategoryIsValidationError(t *testing.T) {
	svc, _ := newRecipeService(t)

	_, err := svc.Search(context.Background(), &types.SearchRequest{Category: "BOGUS"}, types.NewPageable(0, 20, "", ""))

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestSearchByIngredientsAnyMatch(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	_, err := svc.Create(ctx, pastaRequest(), owner.ID)
	require.NoError(t, err)

	other := pastaRequest()
	other.Title = "Cheese Omelette"
	other.Ingredients = []types.IngredientRequest{
		{Name: "Eggs", Quantity: 3, Unit: "PIECE", Category: "EGGS"},
		{Name: "Cheddar", Quantity: 50, Unit: "GRAM", Category: "DAIRY"},
	}
	_, err = svc.Create(ctx, other, owner.ID)
	require.NoError(t, err)

	page := types.NewPageable(0, 20, "", "")

	result, err := svc.SearchByIngredients(ctx, []string{"EGGS", "guanciale"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.TotalElements)

	result, err = svc.SearchByIngredients(ctx, []string{"saffron"}, page)
	require.NoError(t, err)
	assert.Zero(t, result.TotalElements)

	result, err = svc.SearchByIngredients(ctx, []string{"  ", ""}, page)
	require.NoError(t, err)
	assert.Zero(t, result.TotalElements)
}

func TestStatisticsPartitionsByVisibility(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	other := testhelpers.CreateTestUser(t, db, "bob")

	testhelpers.CreateTestRecipe(t, db, owner, "One", true)
	testhelpers.CreateTestRecipe(t, db, owner, "Two", false)
	testhelpers.CreateTestRecipe(t, db, owner, "Three", false)
	testhelpers.CreateTestRecipe(t, db, other, "Elsewhere", true)

	stats, err := svc.Statistics(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalRecipes)
	assert.EqualValues(t, 1, stats.PublicRecipes)
	assert.EqualValues(t, 2, stats.PrivateRecipes)
}

func TestListByOwnerAndPagination(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	for i := 0; i < 5; i++ {
		testhelpers.CreateTestRecipe(t, db, owner, "Recipe", i%2 == 0)
	}

	page, err := svc.ListByOwner(ctx, owner.ID, types.NewPageable(0, 2, "", ""))
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.EqualValues(t, 5, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	last, err := svc.ListByOwner(ctx, owner.ID, types.NewPageable(2, 2, "", ""))
	require.NoError(t, err)
	assert.Len(t, last.Content, 1)
}

func TestListPublicExcludesPrivate(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")
	testhelpers.CreateTestRecipe(t, db, owner, "Public", true)
	testhelpers.CreateTestRecipe(t, db, owner, "Private", false)

	page, err := svc.ListPublic(ctx, types.NewPageable(0, 20, "", ""))
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, "Public", page.Content[0].Title)
}

func TestTopRatedAndMostPopular(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	rate := func(title string, avg float64, count int) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner, title, true)
		require.NoError(t, db.Model(recipe).Updates(map[string]interface{}{
			"average_rating": avg,
			"rating_count":   count,
		}).Error)
	}
	rate("Great", 4.8, 10)
	rate("Good", 4.2, 50)
	rate("Meh", 2.5, 3)
	testhelpers.CreateTestRecipe(t, db, owner, "Unrated", true)

	page := types.NewPageable(0, 20, "", "")

	top, err := svc.TopRated(ctx, 4.0, page)
	require.NoError(t, err)
	require.EqualValues(t, 2, top.TotalElements)
	assert.Equal(t, "Great", top.Content[0].Title)

	popular, err := svc.MostPopular(ctx, page)
	require.NoError(t, err)
	require.EqualValues(t, 3, popular.TotalElements)
	assert.Equal(t, "Good", popular.Content[0].Title)
}

func TestCreateFromGeneratedDraftMarksRecipe(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	ai := &AIService{}
	req := ai.toRecipeRequest(&generatedRecipe{
		Title:        "Wild Mushroom Risotto",
		Description:  "Creamy risotto with porcini",
		Instructions: "Toast the rice, add stock a ladle at a time, finish with butter.",
		Servings:     intPtr(4),
		Category:     "MAIN_COURSE",
		Difficulty:   "MEDIUM",
		Ingredients: []generatedIngredient{
			{Name: "arborio rice", Quantity: 300, Unit: "GRAM", Category: "GRAINS"},
		},
	})

	recipe, err := svc.Create(ctx, req, owner.ID)
	require.NoError(t, err)
	assert.True(t, recipe.IsAiGenerated)
	assert.Equal(t, "AI Generated", recipe.Source)
	assert.False(t, recipe.IsPublic)

	// Editing the saved recipe keeps its provenance.
	update := pastaRequest()
	updated, err := svc.Update(ctx, recipe.ID, update, owner.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsAiGenerated)
}

func TestCreateIgnoresClientProvenanceClaim(t *testing.T) {
	svc, db := newRecipeService(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db, "alice")

	var req types.RecipeRequest
	body := `{"title":"Plain Toast","instructions":"Toast the bread until golden.","category":"BREAKFAST","difficulty":"BEGINNER","is_ai_generated":true}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	recipe, err := svc.Create(ctx, &req, owner.ID)
	require.NoError(t, err)
	assert.False(t, recipe.IsAiGenerated)
}
