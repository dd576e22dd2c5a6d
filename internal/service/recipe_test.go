package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

func newTestRecipeService(db *gorm.DB) *RecipeService {
	return NewRecipeService(db, NewBadIngredientService(db, nil), NewSubstitutionService(db, nil))
}

func TestCreateRecipeRegistersIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("rice and beans", "Rice", "beans"))
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, recipeWith("beans again", "beans", "tomato"))
	require.NoError(t, err)

	known, err := svc.KnownIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beans", "rice", "tomato"}, known)
}

func TestListActiveExcludesInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	active := recipeWith("active", "rice")
	inactive := recipeWith("inactive", "rice")
	inactive.IsActive = false
	mustCreate(t, db, active)
	mustCreate(t, db, inactive)

	recipes, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "active", recipes[0].Title)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListActiveOrdersByCreation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		recipe := recipeWith(title, "rice")
		recipe.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		mustCreate(t, db, recipe)
	}

	recipes, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "first", recipes[0].Title)
	assert.Equal(t, "second", recipes[1].Title)
	assert.Equal(t, "third", recipes[2].Title)
}

func TestSearchIngredientsPrefixFirst(t *testing.T) {
	db := setupTestDB(t)
	for _, name := range []string{"tomato", "cherry tomato", "tamarind"} {
		mustCreate(t, db, &models.Ingredient{Name: name})
	}

	svc := newTestRecipeService(db)
	results, err := svc.SearchIngredients(context.Background(), "tom", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tomato", results[0].Name)
	assert.Equal(t, "cherry tomato", results[1].Name)
}

func TestSuggestByIngredientsTooFew(t *testing.T) {
	svc := newTestRecipeService(setupTestDB(t))

	_, err := svc.SuggestByIngredients(context.Background(), []string{"rice", "beans", "salt"})
	assert.ErrorIs(t, err, ErrTooFewIngredients)
}

func TestSuggestByIngredientsCorrectsTypos(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("rice dish", "rice", "beans", "tomato", "onion"))
	require.NoError(t, err)

	resp, err := svc.SuggestByIngredients(ctx, []string{"rice", "beans", "tomatoe", "onion"})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "rice dish", resp.Suggestions[0].Recipe.Title)
	assert.Empty(t, resp.Suggestions[0].MissingIngredients)
}

func TestSuggestByIngredientsInvalidNames(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("rice dish", "rice", "beans", "tomato", "onion"))
	require.NoError(t, err)

	_, err = svc.SuggestByIngredients(ctx, []string{"rice", "beans", "xyzzy", "qwerty"})
	var invalid *InvalidIngredientsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"rice", "beans"}, invalid.Valid)
	assert.Contains(t, invalid.Suggestions, "xyzzy")
	assert.Equal(t, "", invalid.Suggestions["xyzzy"])
}

func TestSuggestByIngredientsBadCombination(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("fishy milk", "milk", "fish", "rice", "salt"))
	require.NoError(t, err)
	mustCreate(t, db, &models.BadIngredient{Type: models.BadIngredientPair, Ingredients: "milk,fish"})

	resp, err := svc.SuggestByIngredients(ctx, []string{"milk", "fish", "rice", "salt"})
	require.NoError(t, err)
	assert.Equal(t, BadCombinationMessage, resp.Message)
	require.NotNil(t, resp.Violation)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestByIngredientsRanksByFewestMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("complete", "rice", "beans", "tomato", "onion"))
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, recipeWith("needs more", "rice", "beans", "tomato", "onion", "butter", "pepper"))
	require.NoError(t, err)
	mustCreate(t, db, &models.IngredientSubstitution{Ingredient: "butter", Substitutions: models.JSONBStringArray{"margarine"}})

	resp, err := svc.SuggestByIngredients(ctx, []string{"rice", "beans", "tomato", "onion"})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 2)

	assert.Equal(t, "complete", resp.Suggestions[0].Recipe.Title)
	assert.Equal(t, "You have all the ingredients for this meal!", resp.Suggestions[0].Message)

	second := resp.Suggestions[1]
	assert.Equal(t, "needs more", second.Recipe.Title)
	assert.ElementsMatch(t, []string{"butter", "pepper"}, second.MissingIngredients)
	assert.Equal(t, map[string][]string{"butter": {"margarine"}}, second.Substitutions)
}

func TestSuggestByIngredientsNoMatches(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(db)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, recipeWith("unrelated", "plantain", "egg", "flour", "sugar"))
	require.NoError(t, err)
	for _, name := range []string{"rice", "beans", "tomato", "onion"} {
		mustCreate(t, db, &models.Ingredient{Name: name})
	}

	resp, err := svc.SuggestByIngredients(ctx, []string{"rice", "beans", "tomato", "onion"})
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)
	assert.Contains(t, resp.Message, "No recipes found")
}
