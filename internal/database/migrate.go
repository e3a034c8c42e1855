package database

import (
	"fmt"

	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []any {
	return []any{
		&models.User{},
		&models.UserProfile{},
		&models.Category{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	}
}

// AutoMigrate creates or updates the schema from the gorm models. Production
// Postgres deployments use the SQL files applied by cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
