package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddLine adds one ingredient line to a recipe and returns the recipe's
// updated line set. A second line for the same ingredient is a conflict; the
// unique index on (recipe_id, ingredient_id) settles concurrent attempts.
func (s *RecipeService) AddLine(ctx context.Context, principal *types.Principal, recipeID uuid.UUID, req *types.LineRequest) ([]types.RecipeLine, error) {
	recipe, err := s.load(ctx, recipeID, false)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(principal, recipe.UserID); err != nil {
		return nil, err
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	ingredient, err := s.ingredients.GetIngredient(ctx, req.IngredientID)
	if err != nil {
		return nil, err
	}

	var existing int64
	err = s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND ingredient_id = ?", recipe.ID, ingredient.ID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("check recipe line: %w", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("recipe already lists %q", ingredient.Name)
	}

	line := newLine(ingredient, *req)
	line.RecipeID = recipe.ID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
			return err
		}
		return touch(tx, recipe.ID)
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, apperr.Conflict("recipe already lists %q", ingredient.Name)
		case isForeignKeyViolation(err):
			return nil, apperr.NotFound("recipe or ingredient not found")
		}
		return nil, fmt.Errorf("add recipe line: %w", err)
	}

	return s.lines(ctx, recipe.ID)
}

// RemoveLine deletes the line for ingredientID and returns the remaining lines
func (s *RecipeService) RemoveLine(ctx context.Context, principal *types.Principal, recipeID, ingredientID uuid.UUID) ([]types.RecipeLine, error) {
	recipe, err := s.load(ctx, recipeID, false)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(principal, recipe.UserID); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipe_id = ? AND ingredient_id = ?", recipe.ID, ingredientID).
			Delete(&models.RecipeIngredient{})
		if res.Error != nil {
			return fmt.Errorf("remove recipe line: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("recipe has no line for ingredient %s", ingredientID)
		}
		return touch(tx, recipe.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.lines(ctx, recipe.ID)
}

func (s *RecipeService) lines(ctx context.Context, recipeID uuid.UUID) ([]types.RecipeLine, error) {
	var lines []models.RecipeIngredient
	err := s.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}
	return types.NewRecipeLines(lines), nil
}

// touch bumps the recipe's updated_at after a line change
func touch(tx *gorm.DB, recipeID uuid.UUID) error {
	return tx.Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("updated_at", time.Now()).Error
}
