package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

type RecipeHandler struct {
	db              *gorm.DB
	recipeService   service.IRecipeService
	basicsService   service.IBasicIngredientService
	authService     service.IAuthService
	creationLimiter *middleware.RateLimiter
}

func NewRecipeHandler(db *gorm.DB, recipeService service.IRecipeService, basicsService service.IBasicIngredientService, authService service.IAuthService) *RecipeHandler {
	return NewRecipeHandlerWithRateLimit(db, recipeService, basicsService, authService, nil)
}

// NewRecipeHandlerWithRateLimit creates a recipe handler that throttles
// recipe creation. A nil limiter disables throttling.
func NewRecipeHandlerWithRateLimit(db *gorm.DB, recipeService service.IRecipeService, basicsService service.IBasicIngredientService, authService service.IAuthService, creationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		db:              db,
		recipeService:   recipeService,
		basicsService:   basicsService,
		authService:     authService,
		creationLimiter: creationLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.creationLimiter != nil {
		create = append(create, h.creationLimiter.RateLimitMiddleware())
	}
	create = append(create, h.CreateRecipe)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/all", middleware.AuthMiddleware(h.authService), h.ListAllRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", create...)
		recipes.POST("/suggest-by-ingredients", middleware.OptionalAuthMiddleware(h.authService), h.SuggestByIngredients)
	}

	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("/search", h.SearchIngredients)
		ingredients.GET("/basic", h.BasicIngredients)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	var err error

	if search := c.Query("q"); search != "" {
		recipes, err = h.recipeService.SearchRecipes(c.Request.Context(), search)
	} else {
		recipes, err = h.recipeService.ListActive(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	if mealType := c.Query("meal_type"); mealType != "" {
		filtered := recipes[:0:0]
		for _, recipe := range recipes {
			if recipe.HasMealType(mealType) {
				filtered = append(filtered, recipe)
			}
		}
		recipes = filtered
	}

	if category := c.Query("category"); category != "" {
		category = strings.ToLower(category)
		filtered := recipes[:0:0]
		for _, recipe := range recipes {
			for _, rc := range recipe.Categories {
				if strings.ToLower(rc) == category {
					filtered = append(filtered, recipe)
					break
				}
			}
		}
		recipes = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

// ListAllRecipes returns every recipe, including inactive ones. Admins
// only.
func (h *RecipeHandler) ListAllRecipes(c *gin.Context) {
	if !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view all recipes."})
		return
	}

	recipes, err := h.recipeService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), *userID)
	if err != nil || !user.IsVerifiedContributor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only verified contributors can create recipes."})
		return
	}

	recipe := &models.Recipe{
		Title:         req.Title,
		Description:   req.Description,
		Instructions:  req.Instructions,
		Ingredients:   req.Ingredients,
		Categories:    req.Categories,
		Cuisines:      req.Cuisines,
		Tags:          req.Tags,
		MealTypes:     req.MealTypes,
		IsActive:      true,
		ContributorID: userID,
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) SuggestByIngredients(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least 4 ingredient names."})
		return
	}

	result, err := h.recipeService.SuggestByIngredients(c.Request.Context(), req.IngredientNames)
	if err != nil {
		var invalid *service.InvalidIngredientsError
		switch {
		case errors.Is(err, service.ErrTooFewIngredients):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least 4 ingredient names."})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Some ingredient names are invalid or missing.",
				"valid_ingredients": invalid.Valid,
				"suggestions":       invalid.Suggestions,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest recipes"})
		}
		return
	}

	// Advisory rejections and empty results are informational, not
	// client errors.
	if result.Message != "" {
		c.JSON(http.StatusOK, gin.H{"message": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_recipes": result.Suggestions,
		"info":              result.Info,
	})
}

func (h *RecipeHandler) SearchIngredients(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Query parameter "q" is required.`})
		return
	}
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must be at least 2 characters long."})
		return
	}

	ingredients, err := h.recipeService.SearchIngredients(c.Request.Context(), query, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
		"query":       query,
	})
}

func (h *RecipeHandler) BasicIngredients(c *gin.Context) {
	region := c.DefaultQuery("region", "global")

	basics, err := h.basicsService.ListByRegion(c.Request.Context(), region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basic ingredients"})
		return
	}

	names := make([]gin.H, 0, len(basics))
	for _, b := range basics {
		names = append(names, gin.H{"name": b.Name})
	}
	c.JSON(http.StatusOK, gin.H{
		"basic_ingredients": names,
		"region":            region,
		"count":             len(basics),
	})
}

func (h *RecipeHandler) isAdmin(c *gin.Context) bool {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		return false
	}
	user, err := h.authService.GetUser(c.Request.Context(), *userID)
	return err == nil && user.Role == models.RoleAdmin
}
