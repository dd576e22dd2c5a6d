package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeIngredients stores the ingredient lines as JSONB
type RecipeIngredients []RecipeIngredient

// Value implements the driver.Valuer interface
func (a RecipeIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *RecipeIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = RecipeIngredients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
	Title         string            `gorm:"size:255;not null" json:"title"`
	Description   string            `gorm:"type:text" json:"description"`
	Instructions  JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Ingredients   RecipeIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Categories    JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"categories"`
	Cuisines      JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"cuisines"`
	Tags          JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	MealTypes     JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"meal_types"`
	IsActive      bool              `gorm:"not null;default:true" json:"is_active"`
	Approved      bool              `gorm:"not null;default:false" json:"approved"`
	Embedding     pgvector.Vector   `gorm:"type:vector(3)" json:"-"`
	ContributorID *uuid.UUID        `gorm:"type:uuid" json:"contributor_id"`
}

// IngredientNames returns the recipe's ingredient names lowercased and trimmed.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// HasMealType reports whether the recipe is associated with the given meal type.
func (r *Recipe) HasMealType(mealType string) bool {
	mealType = strings.ToLower(strings.TrimSpace(mealType))
	for _, mt := range r.MealTypes {
		if strings.ToLower(mt) == mealType {
			return true
		}
	}
	return false
}

// Ingredient is a catalog entry, created on first reference and never
// hard-deleted. Names are unique case-insensitively.
type Ingredient struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	// Nutrition per 100g, optional.
	Calories float64 `gorm:"type:float" json:"calories"`
	Protein  float64 `gorm:"type:float" json:"protein"`
	Carbs    float64 `gorm:"type:float" json:"carbs"`
	Fat      float64 `gorm:"type:float" json:"fat"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
