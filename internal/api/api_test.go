package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

type testEnv struct {
	router          *gin.Engine
	db              *gorm.DB
	auth            *service.AuthService
	recipes         service.IRecipeService
	basics          service.IBasicIngredientService
	recommendations service.IRecommendationService
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

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

	authService := service.NewAuthService(db, "test-secret")
	badIngredientService := service.NewBadIngredientService(db, nil)
	substitutionService := service.NewSubstitutionService(db, nil)
	basicsService := service.NewBasicIngredientService(db, []string{"salt", "water"})
	pantryService := service.NewPantryService(db)
	ruleService := service.NewDietaryRuleService(db)
	recipeService := service.NewRecipeService(db, badIngredientService, substitutionService)
	recommendationService := service.NewRecommendationService(
		recipeService, basicsService, pantryService,
		badIngredientService, ruleService, substitutionService, 10,
	)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(db, recipeService, basicsService, authService).RegisterRoutes(v1)
	NewRecommendationHandler(db, recommendationService, authService).RegisterRoutes(v1)
	NewProfileHandler(db, pantryService, authService).RegisterRoutes(v1)
	NewRuleHandler(ruleService, authService).RegisterRoutes(v1)

	return &testEnv{
		router:          router,
		db:              db,
		auth:            authService,
		recipes:         recipeService,
		basics:          basicsService,
		recommendations: recommendationService,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerUser(t *testing.T, username, email, preferences string) string {
	t.Helper()
	token, err := e.auth.Register(context.Background(), username, email, "password123", "cameroon", preferences)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
