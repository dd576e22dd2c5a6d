package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
	"github.com/chopsmo/chopsmo-go/backend/internal/testdb"
)

// TestRecommendationFlowPostgres runs the full recommendation pipeline
// against a real pgvector-enabled postgres. Requires Docker.
func TestRecommendationFlowPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	tdb := testdb.SetupTestDB(t)
	db := tdb.DB
	ctx := context.Background()

	require.NoError(t, db.Create(&models.BasicIngredient{Name: "salt", Region: "global"}).Error)
	require.NoError(t, db.Create(&models.BasicIngredient{Name: "oil", Region: "global"}).Error)

	badIngredients := service.NewBadIngredientService(db, nil)
	substitutions := service.NewSubstitutionService(db, nil)
	recipes := service.NewRecipeService(db, badIngredients, substitutions)

	_, err := recipes.CreateRecipe(ctx, &models.Recipe{
		Title: "rice and beans",
		Ingredients: models.RecipeIngredients{
			{Name: "rice", Quantity: 500, Unit: "g"},
			{Name: "beans", Quantity: 300, Unit: "g"},
			{Name: "salt", Quantity: 1, Unit: "tsp"},
			{Name: "oil", Quantity: 2, Unit: "tbsp"},
		},
		IsActive: true,
	})
	require.NoError(t, err)

	engine := service.NewRecommendationService(
		recipes,
		service.NewBasicIngredientService(db, tdb.Config.DefaultBasicIngredients),
		service.NewPantryService(db),
		badIngredients,
		service.NewDietaryRuleService(db),
		substitutions,
		tdb.Config.RecommendationLimit,
	)

	resp, err := engine.Recommend(ctx, service.RecommendationRequest{
		Preferences:  []string{"rice", "beans"},
		AssumeBasics: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.True(t, resp.Recipes[0].ReadyToCook)
	assert.Equal(t, 2, resp.Recipes[0].MatchCount)

	// keyword search uses the embedding ordering path on postgres
	found, err := recipes.SearchRecipes(ctx, "rice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "rice and beans", found[0].Title)
}
