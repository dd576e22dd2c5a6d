package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/models"
)

// RunMigrations brings the schema up to date. Postgres additionally
// gets the pgvector extension the recipe embedding column needs;
// SQLite (tests) skips it.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector;").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DietaryPreference{},
		&models.DietaryRule{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.BadIngredient{},
		&models.IngredientSubstitution{},
		&models.BasicIngredient{},
		&models.UserPantry{},
		&models.BasicIngredientUsage{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database migrations applied")
	return nil
}
