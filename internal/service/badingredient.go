package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// BadCombinationMessage is the advisory returned for pair and triplet
// violations. It deliberately does not name the offending ingredients;
// category violations do.
const BadCombinationMessage = "i dey sorry, dis app no fit cook chop with this spices."

const (
	badIngredientCacheKey = "bad_ingredients:tables"
	badIngredientCacheTTL = 5 * time.Minute
)

// BadIngredientTables holds the resolved forbidden combinations. Pair
// and triplet keys are the sorted member names joined with commas,
// mirroring how the records are stored.
type BadIngredientTables struct {
	Pairs      map[string]bool     `json:"pairs"`
	Triplets   map[string]bool     `json:"triplets"`
	Categories map[string][]string `json:"categories"`
}

// CombinationViolation describes why an ingredient set was rejected.
type CombinationViolation struct {
	Message     string   `json:"message"`
	Category    string   `json:"category,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// CheckCombination tests the given ingredient set against the tables.
// Pairs are checked before triplets before categories and the first
// violation wins. A nil return means the set passes.
func (t *BadIngredientTables) CheckCombination(names []string) *CombinationViolation {
	names = normalizeNames(names)

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if t.Pairs[comboKey(names[i], names[j])] {
				return &CombinationViolation{Message: BadCombinationMessage}
			}
		}
	}

	if len(names) >= 3 {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				for k := j + 1; k < len(names); k++ {
					if t.Triplets[comboKey(names[i], names[j], names[k])] {
						return &CombinationViolation{Message: BadCombinationMessage}
					}
				}
			}
		}
	}

	nameSet := toSet(names)
	categories := make([]string, 0, len(t.Categories))
	for category := range t.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		offending := intersect(t.Categories[category], nameSet)
		if len(offending) > 0 {
			sort.Strings(offending)
			return &CombinationViolation{
				Message:     fmt.Sprintf("This app cannot suggest meals with %s items: %s.", category, strings.Join(offending, ", ")),
				Category:    category,
				Ingredients: offending,
			}
		}
	}

	return nil
}

func comboKey(names ...string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// BadIngredientService loads the forbidden-combination tables from the
// store, with a short-lived redis cache in front so recommendation
// bursts don't re-read the whole table.
type BadIngredientService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewBadIngredientService(db *gorm.DB, redisClient *redis.Client) *BadIngredientService {
	return &BadIngredientService{
		db:    db,
		redis: redisClient,
	}
}

// LoadTables returns the current bad-ingredient tables. Malformed
// records (a pair without exactly two names, a triplet without exactly
// three) are skipped. Cache failures fall back to the database.
func (s *BadIngredientService) LoadTables(ctx context.Context) (*BadIngredientTables, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, badIngredientCacheKey).Bytes(); err == nil {
			var tables BadIngredientTables
			if err := json.Unmarshal(data, &tables); err == nil {
				return &tables, nil
			}
		}
	}

	var records []models.BadIngredient
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load bad ingredients: %w", err)
	}

	tables := &BadIngredientTables{
		Pairs:      make(map[string]bool),
		Triplets:   make(map[string]bool),
		Categories: make(map[string][]string),
	}
	for _, record := range records {
		items := record.IngredientList()
		switch record.Type {
		case models.BadIngredientPair:
			if len(items) == 2 {
				tables.Pairs[comboKey(items...)] = true
			}
		case models.BadIngredientTriplet:
			if len(items) == 3 {
				tables.Triplets[comboKey(items...)] = true
			}
		case models.BadIngredientCategory:
			category := strings.ToLower(strings.TrimSpace(record.Category))
			if category == "" {
				category = "uncategorized"
			}
			existing := toSet(tables.Categories[category])
			for _, item := range items {
				if !existing[item] {
					tables.Categories[category] = append(tables.Categories[category], item)
					existing[item] = true
				}
			}
		}
	}

	if s.redis != nil {
		if data, err := json.Marshal(tables); err == nil {
			// Best effort; a failed cache write is not an error.
			s.redis.Set(ctx, badIngredientCacheKey, data, badIngredientCacheTTL)
		}
	}

	return tables, nil
}
