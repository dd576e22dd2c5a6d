package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// PantryService reads and writes a user's always-available ingredient
// set.
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// GetPantry returns the user's pantry ingredient names, lowercased. An
// anonymous caller or a user without a pantry record gets an empty
// list; a missing pantry is not an error.
func (s *PantryService) GetPantry(ctx context.Context, userID *uuid.UUID) ([]string, error) {
	if userID == nil {
		return nil, nil
	}

	var pantry models.UserPantry
	if err := s.db.WithContext(ctx).Where("user_id = ?", *userID).First(&pantry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return normalizeNames(pantry.Ingredients), nil
}

// SetPantry replaces the user's pantry contents.
func (s *PantryService) SetPantry(ctx context.Context, userID uuid.UUID, ingredients []string) (*models.UserPantry, error) {
	names := normalizeNames(ingredients)

	var pantry models.UserPantry
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pantry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pantry = models.UserPantry{
			UserID:      userID,
			Ingredients: names,
		}
		if err := s.db.WithContext(ctx).Create(&pantry).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		pantry.Ingredients = names
		if err := s.db.WithContext(ctx).Save(&pantry).Error; err != nil {
			return nil, err
		}
	}
	return &pantry, nil
}
