package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientService manages ingredient reference data
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns ingredients ordered by name. search matches the
// name case-insensitively; category is an exact tag match.
func (s *IngredientService) ListIngredients(ctx context.Context, search, category string) ([]models.Ingredient, error) {
	q := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where(containsFold(s.db, "name"), likePattern(search))
	}
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("category = ?", category)
	}
	var ingredients []models.Ingredient
	if err := q.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "ingredient")
	}
	return &ingredient, nil
}

func (s *IngredientService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *IngredientService) CreateIngredient(ctx context.Context, req *types.CreateIngredientRequest) (*models.Ingredient, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.DefaultUnit = strings.TrimSpace(req.DefaultUnit)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{
		Name:        req.Name,
		DefaultUnit: req.DefaultUnit,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("ingredient %q already exists", req.Name)
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, req *types.UpdateIngredientRequest) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.InvalidArgument("name may not be blank")
		}
		updates["name"] = name
	}
	if req.DefaultUnit != nil {
		unit := strings.TrimSpace(*req.DefaultUnit)
		if unit == "" {
			return nil, apperr.InvalidArgument("default_unit may not be blank")
		}
		updates["default_unit"] = unit
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if len(updates) == 0 {
		return ingredient, nil
	}

	if err := s.db.WithContext(ctx).Model(ingredient).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("ingredient %q already exists", updates["name"])
		}
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return s.GetIngredient(ctx, id)
}

// DeleteIngredient removes the ingredient and every recipe line that uses it
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete ingredient lines: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Ingredient{})
		if res.Error != nil {
			return fmt.Errorf("delete ingredient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("ingredient not found")
		}
		return nil
	})
}
