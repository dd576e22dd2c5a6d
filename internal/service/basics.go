package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// BasicIngredientService resolves the assumed-staples list for a region
// and records usage analytics when recommendations lean on it.
type BasicIngredientService struct {
	db *gorm.DB
	// defaults is the configured fallback list used when neither the
	// requested region nor the global region has any rows.
	defaults []string
}

func NewBasicIngredientService(db *gorm.DB, defaults []string) *BasicIngredientService {
	return &BasicIngredientService{
		db:       db,
		defaults: normalizeNames(defaults),
	}
}

// ResolveBasics returns the staple ingredient names for a region,
// lowercased and trimmed. Resolution falls back from the region to
// "global" to the configured default list, so the result is never
// empty while a default list is configured.
func (s *BasicIngredientService) ResolveBasics(ctx context.Context, region string) ([]string, error) {
	names, err := s.queryRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 && region != "global" {
		names, err = s.queryRegion(ctx, "global")
		if err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		names = append(names, s.defaults...)
	}
	return names, nil
}

func (s *BasicIngredientService) queryRegion(ctx context.Context, region string) ([]string, error) {
	var basics []models.BasicIngredient
	if err := s.db.WithContext(ctx).Where("region = ?", region).Order("name").Find(&basics).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(basics))
	for _, b := range basics {
		names = append(names, b.Name)
	}
	return normalizeNames(names), nil
}

// ListByRegion returns the raw rows for a region without fallback, for
// the basics listing endpoint.
func (s *BasicIngredientService) ListByRegion(ctx context.Context, region string) ([]models.BasicIngredient, error) {
	var basics []models.BasicIngredient
	if err := s.db.WithContext(ctx).Where("region = ?", region).Order("name").Find(&basics).Error; err != nil {
		return nil, err
	}
	return basics, nil
}

// LogUsage appends one analytics row per assumed ingredient. The write
// happens in the background; failures are logged and never surfaced to
// the caller.
func (s *BasicIngredientService) LogUsage(ingredients []string, userID *uuid.UUID, region string) {
	if len(ingredients) == 0 {
		return
	}
	rows := make([]models.BasicIngredientUsage, 0, len(ingredients))
	for _, name := range normalizeNames(ingredients) {
		rows = append(rows, models.BasicIngredientUsage{
			Ingredient: name,
			UserID:     userID,
			Region:     region,
		})
	}

	go func() {
		if err := s.db.Create(&rows).Error; err != nil {
			log.Printf("Error logging basic ingredient usage: %v", err)
		}
	}()
}
