package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Recipe is owned by exactly one user; (user_id, name) is unique.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	UserID       uuid.UUID          `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipes_user_name,priority:1" json:"user_id"`
	User         User               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CategoryID   *uuid.UUID         `gorm:"type:varchar(36);index" json:"category_id"`
	Category     *Category          `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Name         string             `gorm:"size:200;not null;uniqueIndex:idx_recipes_user_name,priority:2" json:"name"`
	Description  string             `gorm:"type:text" json:"description"`
	Instructions string             `gorm:"type:text;not null" json:"instructions"`
	PrepTime     int                `gorm:"not null;default:0;check:prep_time >= 0" json:"prep_time"`
	CookTime     int                `gorm:"not null;default:0;check:cook_time >= 0" json:"cook_time"`
	Servings     int                `gorm:"not null;default:1;check:servings >= 1" json:"servings"`
	Difficulty   Difficulty         `gorm:"size:10;not null;default:'medium';check:difficulty IN ('easy','medium','hard')" json:"difficulty"`
	Lines        []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime is derived and never stored.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecipeIngredient is a line item; (recipe_id, ingredient_id) is unique.
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	RecipeID     uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredients_pair,priority:1" json:"recipe_id"`
	IngredientID uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredients_pair,priority:2;index" json:"ingredient_id"`
	Ingredient   Ingredient      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity     decimal.Decimal `gorm:"type:decimal(8,2);not null;check:quantity > 0" json:"quantity"`
	Unit         string          `gorm:"size:20;not null" json:"unit"`
	Notes        string          `gorm:"size:200" json:"notes"`
}

func (l *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
