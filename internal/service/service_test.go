package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DietaryPreference{},
		&models.DietaryRule{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.BadIngredient{},
		&models.IngredientSubstitution{},
		&models.BasicIngredient{},
		&models.UserPantry{},
		&models.BasicIngredientUsage{},
	))
	return db
}

func newTestEngine(t *testing.T, db *gorm.DB, defaults []string, limit int) *RecommendationService {
	bad := NewBadIngredientService(db, nil)
	subs := NewSubstitutionService(db, nil)
	return NewRecommendationService(
		NewRecipeService(db, bad, subs),
		NewBasicIngredientService(db, defaults),
		NewPantryService(db),
		bad,
		NewDietaryRuleService(db),
		subs,
		limit,
	)
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

func recipeWith(title string, ingredients ...string) *models.Recipe {
	lines := make(models.RecipeIngredients, 0, len(ingredients))
	for _, name := range ingredients {
		lines = append(lines, models.RecipeIngredient{Name: name, Quantity: 1, Unit: "piece"})
	}
	return &models.Recipe{
		Title:       title,
		Ingredients: lines,
		IsActive:    true,
		Approved:    true,
	}
}
