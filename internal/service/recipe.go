package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// ErrTooFewIngredients is returned when a suggestion request carries
// fewer than the minimum number of ingredient names.
var ErrTooFewIngredients = errors.New("please provide at least 4 ingredient names")

// minSuggestionIngredients is the floor on both the request size and
// the partial-overlap bar for surfacing a recipe with missing
// ingredients.
const minSuggestionIngredients = 4

// fuzzyMatchCutoff is the minimum similarity for auto-correcting an
// unknown ingredient name to a known one.
const fuzzyMatchCutoff = 0.7

// InvalidIngredientsError reports ingredient names that could not be
// resolved against the catalog, along with the ones that could and the
// closest-match corrections attempted.
type InvalidIngredientsError struct {
	Valid       []string
	Suggestions map[string]string
}

func (e *InvalidIngredientsError) Error() string {
	return "some ingredient names are invalid or missing"
}

// RecipeSuggestion is one suggest-by-ingredients result.
type RecipeSuggestion struct {
	Recipe             models.Recipe       `json:"recipe"`
	MissingIngredients []string            `json:"missing_ingredients"`
	Message            string              `json:"message"`
	Substitutions      map[string][]string `json:"substitutions"`
}

// SuggestionResponse is the full suggest-by-ingredients outcome. A
// non-nil Violation means the request was rejected on a bad ingredient
// combination before the catalog was consulted; that outcome is
// advisory, not an error.
type SuggestionResponse struct {
	Message     string                `json:"message,omitempty"`
	Info        string                `json:"info,omitempty"`
	Violation   *CombinationViolation `json:"-"`
	Suggestions []RecipeSuggestion    `json:"suggested_recipes,omitempty"`
}

// RecipeService handles catalog reads and the suggest-by-ingredients
// flow.
type RecipeService struct {
	db             *gorm.DB
	badIngredients *BadIngredientService
	substitutions  *SubstitutionService
}

func NewRecipeService(db *gorm.DB, badIngredients *BadIngredientService, substitutions *SubstitutionService) *RecipeService {
	return &RecipeService{
		db:             db,
		badIngredients: badIngredients,
		substitutions:  substitutions,
	}
}

// CreateRecipe stores a recipe and registers any ingredient names not
// yet in the catalog. Ingredients are created on first reference and
// never hard-deleted here.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	for _, name := range recipe.IngredientNames() {
		ingredient := models.Ingredient{Name: name}
		if err := s.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&ingredient).Error; err != nil {
			return nil, fmt.Errorf("failed to register ingredient %q: %w", name, err)
		}
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListActive returns the active catalog as a consistent snapshot in
// insertion order. The recommendation engine relies on that order for
// stable tie-breaking.
func (s *RecipeService) ListActive(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListAll returns every recipe including inactive ones, newest first.
// Only admin surfaces should use it.
func (s *RecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchRecipes searches active recipes by keyword. On Postgres the
// results are additionally ordered by embedding distance.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	dbQuery := s.db.WithContext(ctx).Where("is_active = ?", true)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.
				Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like, like).
				Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
				})
		} else {
			dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	var recipes []models.Recipe
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// KnownIngredients returns all catalog ingredient names, lowercased.
func (s *RecipeService) KnownIngredients(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return normalizeNames(names), nil
}

// SearchIngredients returns up to limit catalog ingredients whose name
// contains the query, prefix matches first.
func (s *RecipeService) SearchIngredients(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if limit <= 0 {
		limit = 20
	}

	var startsWith []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", query+"%").
		Order("name").Limit(limit).
		Find(&startsWith).Error; err != nil {
		return nil, err
	}

	var contains []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? AND LOWER(name) NOT LIKE ?", "%"+query+"%", query+"%").
		Order("name").Limit(limit).
		Find(&contains).Error; err != nil {
		return nil, err
	}

	results := append(startsWith, contains...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SuggestByIngredients suggests recipes the caller could cook from the
// given ingredient names. Unknown names are auto-corrected to the
// closest catalog ingredient before anything else runs; a stored bad
// combination short-circuits the whole flow with an advisory outcome.
func (s *RecipeService) SuggestByIngredients(ctx context.Context, ingredientNames []string) (*SuggestionResponse, error) {
	if len(ingredientNames) < minSuggestionIngredients {
		return nil, ErrTooFewIngredients
	}

	names := normalizeNames(ingredientNames)

	known, err := s.KnownIngredients(ctx)
	if err != nil {
		return nil, err
	}
	knownSet := toSet(known)

	var valid []string
	corrections := make(map[string]string)
	for _, name := range names {
		if knownSet[name] {
			valid = append(valid, name)
			continue
		}
		corrections[name] = closestMatch(name, known, fuzzyMatchCutoff)
	}

	final := append([]string(nil), valid...)
	for _, corrected := range corrections {
		if corrected != "" {
			final = append(final, corrected)
		}
	}
	final = normalizeNames(final)
	if len(final) < minSuggestionIngredients {
		return nil, &InvalidIngredientsError{Valid: valid, Suggestions: corrections}
	}

	tables, err := s.badIngredients.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	if violation := tables.CheckCombination(final); violation != nil {
		return &SuggestionResponse{Message: violation.Message, Violation: violation}, nil
	}

	recipes, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	substitutionTable, err := s.substitutions.LoadTable(ctx)
	if err != nil {
		return nil, err
	}

	userSet := toSet(final)
	var suggestions []RecipeSuggestion
	for _, recipe := range recipes {
		recipeNames := recipe.IngredientNames()
		overlap := len(intersect(recipeNames, userSet))
		if overlap == 0 {
			continue
		}

		missing := subtract(recipeNames, userSet)
		switch {
		case len(missing) == 0:
			suggestions = append(suggestions, RecipeSuggestion{
				Recipe:             recipe,
				MissingIngredients: []string{},
				Message:            "You have all the ingredients for this meal!",
				Substitutions:      map[string][]string{},
			})
		case overlap >= minSuggestionIngredients:
			suggestions = append(suggestions, RecipeSuggestion{
				Recipe:             recipe,
				MissingIngredients: missing,
				Message:            fmt.Sprintf("You are missing the following ingredients to prepare this meal: %s. Please add or purchase them.", strings.Join(missing, ", ")),
				Substitutions:      ForMissing(missing, substitutionTable),
			})
		}
	}

	if len(suggestions) == 0 {
		return &SuggestionResponse{Message: "No recipes found that contain all the provided ingredients."}, nil
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return len(suggestions[i].MissingIngredients) < len(suggestions[j].MissingIngredients)
	})

	log.Printf("[Analytics] User ingredients: %v | Suggestions: %d", final, len(suggestions))

	return &SuggestionResponse{
		Info:        "Recipes are sorted by best match.",
		Suggestions: suggestions,
	}, nil
}
