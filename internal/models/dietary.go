package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietaryPreference stores a user's raw preference tokens, one record
// per user. Tokens are free-form, comma-separated, e.g.
// "vegetarian,gluten-free,peanut-allergy,exclude-pork".
type DietaryPreference struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Preferences string         `gorm:"type:text;not null;default:''" json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DietaryPreference) TableName() string {
	return "dietary_preferences"
}

// DietaryRule is an admin or user defined catalog filter. A nil UserID
// means the rule is global. Priority orders application when several
// rules exist; it does not short-circuit filtering.
type DietaryRule struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string           `gorm:"size:100;not null" json:"name"`
	UserID             *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	IncludeIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"include_ingredients"`
	ExcludeIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"exclude_ingredients"`
	// MinIngredients drops recipes whose include-list overlap is below
	// the threshold; MaxIngredients drops those above it. Zero means
	// unlimited.
	MinIngredients int            `gorm:"not null;default:0" json:"min_ingredients"`
	MaxIngredients int            `gorm:"not null;default:0" json:"max_ingredients"`
	Priority       int            `gorm:"not null;default:0" json:"priority"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DietaryRule) TableName() string {
	return "dietary_rules"
}
