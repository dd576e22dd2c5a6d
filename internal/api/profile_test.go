package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

func TestPreferencesLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "ada", "ada@example.com", "")

	// empty to start
	w := env.request(t, http.MethodGet, "/api/v1/profile/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["preferences"])

	w = env.request(t, http.MethodPut, "/api/v1/profile/preferences", token, PreferencesRequest{
		Preferences: []string{"vegetarian", "peanut-allergy", "exclude-pork"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/profile/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["preferences"], 3)
	classified := body["classified"].(map[string]interface{})
	assert.Equal(t, []interface{}{"vegetarian"}, classified["positive"])
	assert.Equal(t, []interface{}{"pork"}, classified["excluded"])
	assert.Equal(t, []interface{}{"peanut"}, classified["allergies"])

	w = env.request(t, http.MethodDelete, "/api/v1/profile/preferences", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/profile/preferences", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferencesRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/profile/preferences", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPantryLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "ada", "ada@example.com", "")

	w := env.request(t, http.MethodGet, "/api/v1/profile/pantry", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["ingredients"])

	w = env.request(t, http.MethodPut, "/api/v1/profile/pantry", token, PantryRequest{
		Ingredients: []string{"Salt", "rice"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/profile/pantry", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"salt", "rice"}, decodeBody(t, w)["ingredients"])
}

func TestListRulesEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Create(&models.DietaryRule{Name: "vegetarian"}).Error)

	w := env.request(t, http.MethodGet, "/api/v1/rules", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["rules"], 1)
}

func TestGetRuleEndpointNotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/rules/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
