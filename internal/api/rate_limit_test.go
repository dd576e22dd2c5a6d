package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// The limiter's middleware marks every request it processes: it sets
// the X-RateLimit-* headers, or the X-RateLimit-Error degradation
// header when redis is unreachable. Backing the limiters with an
// unreachable redis makes the header a reliable signal that the
// limiter ran on a route.
func setupRateLimitedEnv(t *testing.T) *testEnv {
	env := setupTestEnv(t)

	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	creationLimiter := middleware.NewRecipeCreationRateLimiter(unreachable)
	recommendationLimiter := middleware.NewRecommendationRateLimiter(unreachable)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(env.auth).RegisterRoutes(v1)
	NewRecipeHandlerWithRateLimit(env.db, env.recipes, env.basics, env.auth, creationLimiter).RegisterRoutes(v1)
	NewRecommendationHandlerWithRateLimit(env.db, env.recommendations, env.auth, recommendationLimiter).RegisterRoutes(v1)
	env.router = router
	return env
}

func TestRecipeCreationRouteRateLimited(t *testing.T) {
	env := setupRateLimitedEnv(t)
	token := env.registerUser(t, "author", "author@example.com", "")
	require.NoError(t, env.db.Model(&models.User{}).
		Where("username = ?", "author").
		Update("is_verified_contributor", true).Error)

	w := env.request(t, http.MethodPost, "/api/v1/recipes", token, CreateRecipeRequest{
		Title:        "Jollof Rice",
		Instructions: []string{"cook the rice"},
		Ingredients: models.RecipeIngredients{
			{Name: "rice", Quantity: 2, Unit: "cups"},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Error"))
}

func TestRecipeReadRoutesNotRateLimited(t *testing.T) {
	env := setupRateLimitedEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/recipes", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Error"))
}

func TestRecommendationRouteRateLimited(t *testing.T) {
	env := setupRateLimitedEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/recommendations", "", RecommendationAPIRequest{
		Preferences: []string{"rice"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Error"))
}
