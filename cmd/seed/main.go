package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/database"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultCategories = []types.CreateCategoryRequest{
	{Name: "Breakfast", Description: "Morning meals"},
	{Name: "Soups", Description: "Soups and stews"},
	{Name: "Salads"},
	{Name: "Main Courses"},
	{Name: "Desserts", Description: "Cakes, cookies and other sweets"},
	{Name: "Baking", Description: "Breads and pastries"},
	{Name: "Drinks"},
}

var defaultIngredients = []types.CreateIngredientRequest{
	{Name: "Salt", DefaultUnit: "tsp", Category: "spice"},
	{Name: "Black Pepper", DefaultUnit: "tsp", Category: "spice"},
	{Name: "Sugar", DefaultUnit: "grams", Category: "baking"},
	{Name: "Brown Sugar", DefaultUnit: "grams", Category: "baking"},
	{Name: "All-Purpose Flour", DefaultUnit: "grams", Category: "baking"},
	{Name: "Baking Soda", DefaultUnit: "tsp", Category: "baking"},
	{Name: "Chocolate Chips", DefaultUnit: "grams", Category: "baking"},
	{Name: "Vanilla Extract", DefaultUnit: "ml", Category: "baking"},
	{Name: "Butter", DefaultUnit: "grams", Category: "dairy"},
	{Name: "Milk", DefaultUnit: "ml", Category: "dairy"},
	{Name: "Eggs", DefaultUnit: "pieces", Category: "dairy"},
	{Name: "Olive Oil", DefaultUnit: "ml", Category: "oil"},
	{Name: "Onion", DefaultUnit: "pieces", Category: "vegetable"},
	{Name: "Garlic", DefaultUnit: "cloves", Category: "vegetable"},
	{Name: "Tomato", DefaultUnit: "pieces", Category: "vegetable"},
	{Name: "Carrot", DefaultUnit: "pieces", Category: "vegetable"},
	{Name: "Rice", DefaultUnit: "grams", Category: "grain"},
	{Name: "Chicken Breast", DefaultUnit: "grams", Category: "meat"},
}

func main() {
	migrate := flag.Bool("migrate", false, "Auto-migrate the schema before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to migrate", zap.Error(err))
		}
	}

	res, err := seed(context.Background(), db, logger)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete",
		zap.Int("categories_created", res.Categories),
		zap.Int("ingredients_created", res.Ingredients),
	)
}

type result struct {
	Categories  int
	Ingredients int
}

// seed creates the default reference data. Rows that already exist are
// skipped, so running it twice is harmless.
func seed(ctx context.Context, db *gorm.DB, logger *zap.Logger) (result, error) {
	var res result

	categories := service.NewCategoryService(db, nil, logger)
	for _, req := range defaultCategories {
		req := req
		_, err := categories.CreateCategory(ctx, &req)
		switch {
		case errors.Is(err, apperr.ErrConflict):
			logger.Debug("category exists, skipping", zap.String("name", req.Name))
		case err != nil:
			return res, fmt.Errorf("category %q: %w", req.Name, err)
		default:
			res.Categories++
		}
	}

	ingredients := service.NewIngredientService(db)
	for _, req := range defaultIngredients {
		req := req
		_, err := ingredients.CreateIngredient(ctx, &req)
		switch {
		case errors.Is(err, apperr.ErrConflict):
			logger.Debug("ingredient exists, skipping", zap.String("name", req.Name))
		case err != nil:
			return res, fmt.Errorf("ingredient %q: %w", req.Name, err)
		default:
			res.Ingredients++
		}
	}

	return res, nil
}
