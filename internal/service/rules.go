package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// ErrRuleNotFound is returned when a rule id does not resolve to a
// stored dietary rule.
var ErrRuleNotFound = errors.New("dietary rule not found")

// DietaryRuleService resolves and applies admin-defined dietary rules.
type DietaryRuleService struct {
	db *gorm.DB
}

func NewDietaryRuleService(db *gorm.DB) *DietaryRuleService {
	return &DietaryRuleService{db: db}
}

// GetRule resolves a rule by id. The resolved value is meant to be
// passed through the whole recommendation pipeline; callers must not
// re-fetch it mid-request.
func (s *DietaryRuleService) GetRule(ctx context.Context, id uuid.UUID) (*models.DietaryRule, error) {
	var rule models.DietaryRule
	if err := s.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to load dietary rule: %w", err)
	}
	return &rule, nil
}

// ListRules returns the global rules plus the given user's rules,
// highest priority first.
func (s *DietaryRuleService) ListRules(ctx context.Context, userID *uuid.UUID) ([]models.DietaryRule, error) {
	query := s.db.WithContext(ctx).Order("priority DESC, created_at")
	if userID != nil {
		query = query.Where("user_id IS NULL OR user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL")
	}
	var rules []models.DietaryRule
	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ApplyRule filters recipes against a resolved rule. The include and
// exclude passes compose independently: recipes must share at least one
// ingredient with a non-empty include-list, and must not contain any
// ingredient from the exclude-list. A threshold pass then drops
// remaining recipes whose include-list overlap count is below
// MinIngredients (when set) or above MaxIngredients (when set; zero
// means unlimited). A nil rule passes everything through.
func (s *DietaryRuleService) ApplyRule(rule *models.DietaryRule, recipes []models.Recipe) []models.Recipe {
	if rule == nil {
		return recipes
	}

	include := toSet(normalizeNames(rule.IncludeIngredients))
	exclude := toSet(normalizeNames(rule.ExcludeIngredients))

	filtered := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		names := recipe.IngredientNames()

		if len(include) > 0 && len(intersect(names, include)) == 0 {
			continue
		}
		if len(exclude) > 0 && len(intersect(names, exclude)) > 0 {
			continue
		}

		matched := len(intersect(names, include))
		if rule.MinIngredients > 0 && matched < rule.MinIngredients {
			continue
		}
		if rule.MaxIngredients > 0 && matched > rule.MaxIngredients {
			continue
		}

		filtered = append(filtered, recipe)
	}
	return filtered
}
