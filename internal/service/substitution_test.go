package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

func TestLoadTable(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.IngredientSubstitution{Ingredient: "Butter", Substitutions: models.JSONBStringArray{"margarine", "palm oil"}})
	mustCreate(t, db, &models.IngredientSubstitution{Ingredient: "  ", Substitutions: models.JSONBStringArray{"ignored"}})

	svc := NewSubstitutionService(db, nil)
	table, err := svc.LoadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"margarine", "palm oil"}, table["butter"])
	assert.Len(t, table, 1)
}

func TestForMissing(t *testing.T) {
	table := map[string][]string{
		"butter": {"margarine"},
		"maggi":  {"bouillon cube"},
	}

	subs := ForMissing([]string{"butter", "pepper"}, table)

	assert.Equal(t, map[string][]string{"butter": {"margarine"}}, subs)
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarityRatio("rice", "rice"))
	assert.Equal(t, 1.0, similarityRatio("", ""))
	assert.Equal(t, 0.0, similarityRatio("rice", ""))
	assert.Greater(t, similarityRatio("tomatoe", "tomato"), 0.9)
	assert.Less(t, similarityRatio("rice", "bleach"), 0.5)
}

func TestClosestMatch(t *testing.T) {
	known := []string{"tomato", "rice", "beans"}

	assert.Equal(t, "tomato", closestMatch("tomatoe", known, 0.7))
	assert.Equal(t, "", closestMatch("xyzzy", known, 0.7))
}
