package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BadIngredientPair     = "pair"
	BadIngredientTriplet  = "triplet"
	BadIngredientCategory = "category"
)

// BadIngredient is a combination of ingredients the system refuses to
// recommend together. Ingredients is stored as comma-separated text so
// admins can edit records directly; pair records must resolve to two
// names and triplet records to three, anything else is skipped at load
// time rather than treated as an error.
type BadIngredient struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string         `gorm:"size:20;not null" json:"type"`
	Ingredients string         `gorm:"type:text;not null" json:"ingredients"`
	Category    string         `gorm:"size:100" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BadIngredient) TableName() string {
	return "bad_ingredients"
}

// IngredientList splits the comma-separated ingredient text into
// lowercased, trimmed names with empties dropped.
func (b *BadIngredient) IngredientList() []string {
	parts := strings.Split(b.Ingredients, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		if name != "" {
			items = append(items, name)
		}
	}
	return items
}

// IngredientSubstitution maps an ingredient name to an ordered list of
// alternatives suggested when the ingredient is missing.
type IngredientSubstitution struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Ingredient    string           `gorm:"size:100;not null;uniqueIndex" json:"ingredient"`
	Substitutions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"substitutions"`
	Notes         string           `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (IngredientSubstitution) TableName() string {
	return "ingredient_substitutions"
}
