package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

const (
	substitutionCacheKey = "ingredient_substitutions:table"
	substitutionCacheTTL = 5 * time.Minute
)

// SubstitutionService looks up alternatives for missing ingredients.
type SubstitutionService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewSubstitutionService(db *gorm.DB, redisClient *redis.Client) *SubstitutionService {
	return &SubstitutionService{
		db:    db,
		redis: redisClient,
	}
}

// LoadTable returns the full substitution map keyed by lowercased
// ingredient name. Cache failures fall back to the database.
func (s *SubstitutionService) LoadTable(ctx context.Context) (map[string][]string, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, substitutionCacheKey).Bytes(); err == nil {
			var table map[string][]string
			if err := json.Unmarshal(data, &table); err == nil {
				return table, nil
			}
		}
	}

	var records []models.IngredientSubstitution
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredient substitutions: %w", err)
	}

	table := make(map[string][]string, len(records))
	for _, record := range records {
		name := strings.ToLower(strings.TrimSpace(record.Ingredient))
		if name == "" {
			continue
		}
		table[name] = append([]string(nil), record.Substitutions...)
	}

	if s.redis != nil {
		if data, err := json.Marshal(table); err == nil {
			s.redis.Set(ctx, substitutionCacheKey, data, substitutionCacheTTL)
		}
	}

	return table, nil
}

// ForMissing maps each missing ingredient that has a table entry to its
// alternatives. Ingredients without an entry are simply absent from the
// result.
func ForMissing(missing []string, table map[string][]string) map[string][]string {
	subs := make(map[string][]string)
	for _, name := range missing {
		if alternatives, ok := table[name]; ok {
			subs[name] = alternatives
		}
	}
	return subs
}
