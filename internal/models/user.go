package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser        = "user"
	RoleContributor = "contributor"
	RoleAdmin       = "admin"
)

type User struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	Username              string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                 string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash          string         `gorm:"not null" json:"-"`
	Role                  string         `gorm:"size:20;not null;default:'user'" json:"role"`
	IsVerifiedContributor bool           `gorm:"not null;default:false" json:"is_verified_contributor"`
	// Region drives basic-ingredient localization.
	Region string `gorm:"size:10;not null;default:'global'" json:"region"`
}
