package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	"github.com/Nathan-Omenge/recipe-management-api/internal/database"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "recipes.db?_foreign_keys=on", database.SQLiteDSN("recipes.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", database.SQLiteDSN("file:x?mode=memory"))
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "recipes.db"),
	}

	db, err := database.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, database.AutoMigrate(db))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	var lowered string
	require.NoError(t, db.Raw("SELECT LOWER(?)", "ÄPFEL Crème").Scan(&lowered).Error)
	assert.Equal(t, "äpfel crème", lowered)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSchemaConstraints(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	assertSchemaConstraints(t, db)
}

func TestSchemaConstraintsPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	assertSchemaConstraints(t, db)
}

// assertSchemaConstraints checks the uniqueness, foreign key and check rules
// the stores rely on when two writers race.
func assertSchemaConstraints(t *testing.T, db *gorm.DB) {
	t.Helper()

	owner := testhelpers.CreateUser(t, db, "owner")
	other := testhelpers.CreateUser(t, db, "other")
	salt := testhelpers.CreateIngredient(t, db, "Salt", "tsp")

	recipe := models.Recipe{UserID: owner.ID, Name: "Soup", Instructions: "Boil.", Servings: 1, Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&recipe).Error)

	t.Run("recipe name unique per owner", func(t *testing.T) {
		dup := models.Recipe{UserID: owner.ID, Name: "Soup", Instructions: "Boil.", Servings: 1, Difficulty: models.DifficultyEasy}
		assertViolation(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)

		mine := models.Recipe{UserID: other.ID, Name: "Soup", Instructions: "Boil.", Servings: 1, Difficulty: models.DifficultyEasy}
		assert.NoError(t, db.Create(&mine).Error)
	})

	t.Run("one line per ingredient", func(t *testing.T) {
		line := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: salt.ID, Quantity: decimal.NewFromInt(1), Unit: "tsp"}
		require.NoError(t, db.Create(&line).Error)

		dup := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: salt.ID, Quantity: decimal.NewFromInt(2), Unit: "tsp"}
		assertViolation(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)
	})

	t.Run("line must reference an existing recipe", func(t *testing.T) {
		orphan := models.RecipeIngredient{RecipeID: other.ID, IngredientID: salt.ID, Quantity: decimal.NewFromInt(1), Unit: "tsp"}
		assertViolation(t, db.Create(&orphan).Error, gorm.ErrForeignKeyViolated)
	})

	t.Run("check constraints", func(t *testing.T) {
		bad := models.Recipe{UserID: owner.ID, Name: "Stew", Instructions: "Boil.", Servings: 1, Difficulty: "trivial"}
		assertViolation(t, db.Create(&bad).Error, gorm.ErrCheckConstraintViolated)

		pepper := testhelpers.CreateIngredient(t, db, "Pepper", "grams")
		zero := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: pepper.ID, Quantity: decimal.Zero, Unit: "g"}
		assertViolation(t, db.Create(&zero).Error, gorm.ErrCheckConstraintViolated)

		negative := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: pepper.ID, Quantity: decimal.NewFromInt(-1), Unit: "g"}
		assertViolation(t, db.Create(&negative).Error, gorm.ErrCheckConstraintViolated)
	})

	t.Run("ingredient and category names are unique", func(t *testing.T) {
		assertViolation(t, db.Create(&models.Ingredient{Name: "Salt"}).Error, gorm.ErrDuplicatedKey)

		require.NoError(t, db.Create(&models.Category{Name: "Soups"}).Error)
		assertViolation(t, db.Create(&models.Category{Name: "Soups"}).Error, gorm.ErrDuplicatedKey)
	})
}

// assertViolation accepts the translated gorm error or, for drivers that do
// not translate every constraint code, the raw constraint message.
func assertViolation(t *testing.T, err error, want error) {
	t.Helper()
	require.Error(t, err)
	if errors.Is(err, want) {
		return
	}
	msg := err.Error()
	assert.True(t,
		strings.Contains(msg, "constraint failed") || strings.Contains(msg, "violates"),
		"expected %v, got %v", want, err)
}
