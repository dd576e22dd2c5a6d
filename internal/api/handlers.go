package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/config"
	"github.com/chopsmo/chopsmo-go/backend/internal/database"
	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ChopSmo API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, cfg *config.Config) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Initialize Redis for caching and rate limiting
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		// Continue without caching or rate limiting if Redis is not available
		redisClient = nil
	}

	// Create services
	badIngredientService := service.NewBadIngredientService(db, redisClient)
	substitutionService := service.NewSubstitutionService(db, redisClient)
	basicsService := service.NewBasicIngredientService(db, cfg.DefaultBasicIngredients)
	pantryService := service.NewPantryService(db)
	ruleService := service.NewDietaryRuleService(db)
	recipeService := service.NewRecipeService(db, badIngredientService, substitutionService)
	recommendationService := service.NewRecommendationService(
		recipeService,
		basicsService,
		pantryService,
		badIngredientService,
		ruleService,
		substitutionService,
		cfg.RecommendationLimit,
	)

	// Create rate limiters
	var recommendationLimiter *middleware.RateLimiter
	var recipeCreationLimiter *middleware.RateLimiter
	if redisClient != nil {
		recommendationLimiter = middleware.NewRecommendationRateLimiter(redisClient)
		recipeCreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	}

	// Create handlers; the limiters are enforced inside the handlers'
	// route registration, after auth has resolved the user
	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandlerWithRateLimit(db, recipeService, basicsService, authService, recipeCreationLimiter)
	recommendationHandler := NewRecommendationHandlerWithRateLimit(db, recommendationService, authService, recommendationLimiter)
	profileHandler := NewProfileHandler(db, pantryService, authService)
	ruleHandler := NewRuleHandler(ruleService, authService)

	// Register routes
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
	ruleHandler.RegisterRoutes(v1)
	recommendationHandler.RegisterRoutes(v1)

	if recipeCreationLimiter != nil {
		RegisterRateLimitRoutes(v1, authService, recommendationLimiter, recipeCreationLimiter)
	}
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, authService service.IAuthService, recommendationLimiter, creationLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	rateLimits.Use(middleware.AuthMiddleware(authService))
	{
		rateLimits.GET("/recommendations", rateLimitStatus(recommendationLimiter, "1h"))
		rateLimits.GET("/recipe-creation", rateLimitStatus(creationLimiter, "1h"))
	}
}

func rateLimitStatus(limiter *middleware.RateLimiter, window string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     window,
		})
	}
}
