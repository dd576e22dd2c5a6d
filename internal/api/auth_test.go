package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Username:    "ada",
		Email:       "ada@example.com",
		Password:    "password123",
		Region:      "cameroon",
		Preferences: "vegetarian",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	// same username again
	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Username: "ada",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpointValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Username: "ada",
		Email:    "not-an-email",
		Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "ada", "ada@example.com", "")

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
