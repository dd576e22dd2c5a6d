package api

import "github.com/chopsmo/chopsmo-go/backend/internal/models"

// RegisterRequest is the auth registration payload.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Region      string `json:"region"`
	Preferences string `json:"preferences"`
}

// LoginRequest is the auth login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PreferencesRequest replaces a user's raw dietary preference tokens.
type PreferencesRequest struct {
	Preferences []string `json:"preferences"`
}

// PantryRequest replaces a user's pantry contents.
type PantryRequest struct {
	Ingredients []string `json:"ingredients"`
}

// SuggestRequest is the suggest-by-ingredients payload.
type SuggestRequest struct {
	IngredientNames []string `json:"ingredient_names"`
}

// RecommendationAPIRequest is the recommendation payload. AssumeBasics
// defaults to true when omitted.
type RecommendationAPIRequest struct {
	Preferences  []string `json:"preferences"`
	Region       string   `json:"region"`
	MealType     string   `json:"meal_type"`
	RuleID       string   `json:"rule_id"`
	AssumeBasics *bool    `json:"assume_basics"`
}

// CreateRecipeRequest is the recipe authoring payload.
type CreateRecipeRequest struct {
	Title        string                   `json:"title" binding:"required"`
	Description  string                   `json:"description"`
	Instructions []string                 `json:"instructions" binding:"required"`
	Ingredients  models.RecipeIngredients `json:"ingredients" binding:"required"`
	Categories   []string                 `json:"categories"`
	Cuisines     []string                 `json:"cuisines"`
	Tags         []string                 `json:"tags"`
	MealTypes    []string                 `json:"meal_types"`
}
