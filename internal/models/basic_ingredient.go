package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BasicIngredient is a staple assumed present in any kitchen for a
// region. Names are unique across regions.
type BasicIngredient struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Region    string         `gorm:"size:10;not null;default:'global';index" json:"region"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BasicIngredient) TableName() string {
	return "basic_ingredients"
}

// UserPantry is a user's always-available ingredient set, one record
// per user.
type UserPantry struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (UserPantry) TableName() string {
	return "user_pantries"
}

// BasicIngredientUsage is an append-only analytics row written whenever
// a recommendation assumes the user has a basic ingredient. The engine
// never reads it back.
type BasicIngredientUsage struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Ingredient string     `gorm:"size:100;not null" json:"ingredient"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Region     string     `gorm:"size:10;not null;default:'global'" json:"region"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (BasicIngredientUsage) TableName() string {
	return "basic_ingredient_usages"
}
