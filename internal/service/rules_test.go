package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

func TestGetRuleNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDietaryRuleService(db)

	_, err := svc.GetRule(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestGetRule(t *testing.T) {
	db := setupTestDB(t)
	rule := &models.DietaryRule{Name: "vegetarian", ExcludeIngredients: models.JSONBStringArray{"beef"}}
	mustCreate(t, db, rule)

	svc := NewDietaryRuleService(db)
	got, err := svc.GetRule(context.Background(), rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "vegetarian", got.Name)
}

func TestListRulesScopesToUser(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	otherID := uuid.New()
	mustCreate(t, db, &models.DietaryRule{Name: "global", Priority: 1})
	mustCreate(t, db, &models.DietaryRule{Name: "mine", UserID: &userID, Priority: 5})
	mustCreate(t, db, &models.DietaryRule{Name: "theirs", UserID: &otherID, Priority: 9})

	svc := NewDietaryRuleService(db)

	rules, err := svc.ListRules(context.Background(), &userID)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "mine", rules[0].Name)
	assert.Equal(t, "global", rules[1].Name)

	anonymous, err := svc.ListRules(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.Equal(t, "global", anonymous[0].Name)
}

func TestApplyRuleNilPassesThrough(t *testing.T) {
	svc := NewDietaryRuleService(nil)
	recipes := []models.Recipe{*recipeWith("anything", "rice")}

	assert.Equal(t, recipes, svc.ApplyRule(nil, recipes))
}

func TestApplyRuleIncludeAndExclude(t *testing.T) {
	svc := NewDietaryRuleService(nil)
	rule := &models.DietaryRule{
		IncludeIngredients: models.JSONBStringArray{"beans", "rice"},
		ExcludeIngredients: models.JSONBStringArray{"pork"},
	}
	recipes := []models.Recipe{
		*recipeWith("beans and rice", "beans", "rice", "salt"),
		*recipeWith("pork rice", "rice", "pork"),
		*recipeWith("fish stew", "fish", "tomato"),
	}

	filtered := svc.ApplyRule(rule, recipes)
	require.Len(t, filtered, 1)
	assert.Equal(t, "beans and rice", filtered[0].Title)
}

func TestApplyRuleMinThreshold(t *testing.T) {
	svc := NewDietaryRuleService(nil)
	rule := &models.DietaryRule{
		IncludeIngredients: models.JSONBStringArray{"beans", "rice"},
		MinIngredients:     2,
	}
	recipes := []models.Recipe{
		*recipeWith("rice only", "rice", "salt"),
		*recipeWith("beans and rice", "beans", "rice"),
	}

	// "rice only" passes the raw include test but fails the threshold
	filtered := svc.ApplyRule(rule, recipes)
	require.Len(t, filtered, 1)
	assert.Equal(t, "beans and rice", filtered[0].Title)
}

func TestApplyRuleMaxThreshold(t *testing.T) {
	svc := NewDietaryRuleService(nil)
	rule := &models.DietaryRule{
		IncludeIngredients: models.JSONBStringArray{"beans", "rice", "corn"},
		MaxIngredients:     2,
	}
	recipes := []models.Recipe{
		*recipeWith("everything", "beans", "rice", "corn"),
		*recipeWith("two of three", "beans", "rice"),
	}

	filtered := svc.ApplyRule(rule, recipes)
	require.Len(t, filtered, 1)
	assert.Equal(t, "two of three", filtered[0].Title)
}
