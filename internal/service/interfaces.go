package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password, region, preferences string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for catalog operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListActive(ctx context.Context) ([]models.Recipe, error)
	ListAll(ctx context.Context) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error)
	KnownIngredients(ctx context.Context) ([]string, error)
	SearchIngredients(ctx context.Context, query string, limit int) ([]models.Ingredient, error)
	SuggestByIngredients(ctx context.Context, ingredientNames []string) (*SuggestionResponse, error)
}

// IRecommendationService defines the interface for the recommendation
// engine
type IRecommendationService interface {
	Recommend(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error)
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	GetPantry(ctx context.Context, userID *uuid.UUID) ([]string, error)
	SetPantry(ctx context.Context, userID uuid.UUID, ingredients []string) (*models.UserPantry, error)
}

// IBasicIngredientService defines the interface for staple resolution
type IBasicIngredientService interface {
	ResolveBasics(ctx context.Context, region string) ([]string, error)
	ListByRegion(ctx context.Context, region string) ([]models.BasicIngredient, error)
	LogUsage(ingredients []string, userID *uuid.UUID, region string)
}

// IDietaryRuleService defines the interface for rule operations
type IDietaryRuleService interface {
	GetRule(ctx context.Context, id uuid.UUID) (*models.DietaryRule, error)
	ListRules(ctx context.Context, userID *uuid.UUID) ([]models.DietaryRule, error)
	ApplyRule(rule *models.DietaryRule, recipes []models.Recipe) []models.Recipe
}
