package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// DefaultRecommendationLimit caps the ranked result list.
const DefaultRecommendationLimit = 10

// minRecommendationOverlap is the partial-match bar: a recipe the user
// cannot fully cover is still surfaced when at least this many of its
// ingredients overlap the user's set. Anything below is dropped, not
// ranked lower.
const minRecommendationOverlap = 4

// RecommendationRequest is the engine input, supplied by the HTTP
// layer. A nil UserID means anonymous; a nil RuleID means no rule.
type RecommendationRequest struct {
	UserID       *uuid.UUID
	Preferences  []string
	Region       string
	MealType     string
	RuleID       *uuid.UUID
	AssumeBasics bool
}

// Assumptions echoes back the resolved inputs a recommendation was
// computed from.
type Assumptions struct {
	AssumedBasicIngredients []string `json:"assumed_basic_ingredients"`
	UserPantryIngredients   []string `json:"user_pantry_ingredients"`
	UserPreferences         []string `json:"user_preferences"`
	AssumeBasics            bool     `json:"assume_basics"`
}

// AssumptionWarning flags a recommended recipe that is only cookable if
// the assumed basics really are in the user's kitchen.
type AssumptionWarning struct {
	RecipeID      uuid.UUID `json:"recipe_id"`
	RecipeTitle   string    `json:"recipe_title"`
	AssumedBasics []string  `json:"assumed_basics"`
	Message       string    `json:"message"`
}

// RecommendedRecipe is one ranked result with its annotations.
type RecommendedRecipe struct {
	Recipe             models.Recipe       `json:"recipe"`
	MatchCount         int                 `json:"match_count"`
	MissingIngredients []string            `json:"missing_ingredients"`
	Substitutions      map[string][]string `json:"substitutions"`
	ReadyToCook        bool                `json:"ready_to_cook"`
	Message            string              `json:"message"`
}

// RecommendationResponse is the composed engine output. A non-empty
// Message with no recipes is an informational outcome (no signal, or a
// bad-combination advisory), not an error.
type RecommendationResponse struct {
	Message     string              `json:"message,omitempty"`
	Recipes     []RecommendedRecipe `json:"recipes"`
	Assumptions Assumptions         `json:"assumptions"`
	Warnings    []AssumptionWarning `json:"warnings"`
}

// RecommendationService orchestrates preference classification, basics
// and pantry resolution, safety checking, rule filtering, scoring and
// annotation into one request/response cycle. A single call performs
// no writes except the fire-and-forget usage log.
type RecommendationService struct {
	recipes        *RecipeService
	basics         *BasicIngredientService
	pantry         *PantryService
	badIngredients *BadIngredientService
	rules          *DietaryRuleService
	substitutions  *SubstitutionService
	limit          int
}

func NewRecommendationService(
	recipes *RecipeService,
	basics *BasicIngredientService,
	pantry *PantryService,
	badIngredients *BadIngredientService,
	rules *DietaryRuleService,
	substitutions *SubstitutionService,
	limit int,
) *RecommendationService {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	return &RecommendationService{
		recipes:        recipes,
		basics:         basics,
		pantry:         pantry,
		badIngredients: badIngredients,
		rules:          rules,
		substitutions:  substitutions,
		limit:          limit,
	}
}

// Recommend runs the recommendation pipeline. It returns an error only
// for store failures and an unresolvable rule id (ErrRuleNotFound);
// every other outcome, including bad-combination rejections and empty
// input, is a structured informational response.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error) {
	region := strings.ToLower(strings.TrimSpace(req.Region))
	if region == "" {
		region = "global"
	}

	// Resolve inputs.
	prefs := ClassifyPreferences(req.Preferences)

	var assumedBasics []string
	if req.AssumeBasics {
		resolved, err := s.basics.ResolveBasics(ctx, region)
		if err != nil {
			return nil, err
		}
		assumedBasics = resolved
	}

	pantryIngredients, err := s.pantry.GetPantry(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	assumptions := Assumptions{
		AssumedBasicIngredients: emptyIfNil(assumedBasics),
		UserPantryIngredients:   emptyIfNil(pantryIngredients),
		UserPreferences:         emptyIfNil(normalizeNames(req.Preferences)),
		AssumeBasics:            req.AssumeBasics,
	}

	// Guard: nothing to recommend from.
	if len(req.Preferences) == 0 && req.RuleID == nil {
		return &RecommendationResponse{
			Message:     "Provide dietary preferences or a dietary rule to get recommendations.",
			Recipes:     []RecommendedRecipe{},
			Assumptions: assumptions,
			Warnings:    []AssumptionWarning{},
		}, nil
	}

	// Resolve the rule exactly once; the value is reused for every
	// later pass so a concurrent rule deletion cannot fail the request
	// midway.
	var rule *models.DietaryRule
	if req.RuleID != nil {
		rule, err = s.rules.GetRule(ctx, *req.RuleID)
		if err != nil {
			return nil, err
		}
	}

	combined := normalizeNames(append(append(append([]string(nil), prefs.Positive...), assumedBasics...), pantryIngredients...))

	// Safety check before any catalog read.
	tables, err := s.badIngredients.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	if violation := tables.CheckCombination(combined); violation != nil {
		return &RecommendationResponse{
			Message:     violation.Message,
			Recipes:     []RecommendedRecipe{},
			Assumptions: assumptions,
			Warnings:    []AssumptionWarning{},
		}, nil
	}

	// Catalog filter.
	recipes, err := s.recipes.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if req.MealType != "" {
		filtered := recipes[:0:0]
		for _, recipe := range recipes {
			if recipe.HasMealType(req.MealType) {
				filtered = append(filtered, recipe)
			}
		}
		recipes = filtered
	}
	recipes = s.rules.ApplyRule(rule, recipes)

	combinedSet := toSet(combined)
	excludedSet := toSet(append(append([]string(nil), prefs.Excluded...), prefs.Allergies...))
	positiveSet := toSet(prefs.Positive)
	availableSet := toSet(normalizeNames(append(append([]string(nil), prefs.Positive...), pantryIngredients...)))
	basicsSet := toSet(assumedBasics)

	seen := make(map[uuid.UUID]bool, len(recipes))
	candidates := make([]RecommendedRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		if seen[recipe.ID] {
			continue
		}
		seen[recipe.ID] = true

		names := recipe.IngredientNames()

		if len(intersect(names, excludedSet)) > 0 {
			continue
		}

		overlap := len(intersect(names, combinedSet))
		if len(combinedSet) > 0 && overlap == 0 {
			continue
		}

		// Precision gate: surface only recipes the user can fully
		// cover, or mostly cover.
		readyToCook := isSuperset(combinedSet, names)
		if !readyToCook && overlap < minRecommendationOverlap {
			continue
		}

		candidates = append(candidates, RecommendedRecipe{
			Recipe:      recipe,
			MatchCount:  len(intersect(names, positiveSet)),
			ReadyToCook: readyToCook,
		})
	}

	// Score and select. Basics and pantry decide eligibility above but
	// must not inflate rank, so the score counts positive-preference
	// matches only. Ties keep catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchCount > candidates[j].MatchCount
	})
	if len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}

	// Annotate.
	substitutionTable, err := s.substitutions.LoadTable(ctx)
	if err != nil {
		return nil, err
	}

	warnings := []AssumptionWarning{}
	for i := range candidates {
		recipe := &candidates[i]
		names := recipe.Recipe.IngredientNames()

		// Missing is computed against preferences and pantry only: a
		// recipe missing nothing but basics still reads as cookable.
		missing := subtract(names, availableSet)
		assumed := intersect(missing, basicsSet)

		switch {
		case len(missing) == 0:
			recipe.MissingIngredients = []string{}
			recipe.Substitutions = map[string][]string{}
			recipe.Message = "You have all the ingredients for this meal!"
		case len(assumed) == len(missing):
			recipe.MissingIngredients = []string{}
			recipe.Substitutions = map[string][]string{}
			recipe.Message = "You have all the ingredients for this meal!"
			warnings = append(warnings, AssumptionWarning{
				RecipeID:      recipe.Recipe.ID,
				RecipeTitle:   recipe.Recipe.Title,
				AssumedBasics: assumed,
				Message:       fmt.Sprintf("This recipe assumes you have: %s.", strings.Join(assumed, ", ")),
			})
			s.basics.LogUsage(assumed, req.UserID, region)
		default:
			recipe.MissingIngredients = missing
			recipe.Substitutions = ForMissing(missing, substitutionTable)
			recipe.Message = fmt.Sprintf("You are missing the following ingredients to prepare this meal: %s. Please add or purchase them.", strings.Join(missing, ", "))
		}
	}

	return &RecommendationResponse{
		Recipes:     candidates,
		Assumptions: assumptions,
		Warnings:    warnings,
	}, nil
}

func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
