package types

import (
	"time"

	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/google/uuid"
)

// RecipeLine is one ingredient line as returned to callers
type RecipeLine struct {
	ID             uuid.UUID `json:"id"`
	IngredientID   uuid.UUID `json:"ingredient"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       string    `json:"quantity"`
	Unit           string    `json:"unit"`
	Notes          string    `json:"notes"`
}

// RecipeSummary is the list view of a recipe
type RecipeSummary struct {
	ID              uuid.UUID  `json:"id"`
	Owner           string     `json:"user"`
	CategoryID      *uuid.UUID `json:"category"`
	CategoryName    string     `json:"category_name,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PrepTime        int        `json:"prep_time"`
	CookTime        int        `json:"cook_time"`
	TotalTime       int        `json:"total_time"`
	Servings        int        `json:"servings"`
	Difficulty      string     `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
	IngredientCount int        `json:"ingredient_count"`
}

// RecipeDetail is the full view of a recipe including its lines
type RecipeDetail struct {
	ID           uuid.UUID    `json:"id"`
	Owner        string       `json:"user"`
	CategoryID   *uuid.UUID   `json:"category"`
	CategoryName string       `json:"category_name,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Instructions string       `json:"instructions"`
	PrepTime     int          `json:"prep_time"`
	CookTime     int          `json:"cook_time"`
	TotalTime    int          `json:"total_time"`
	Servings     int          `json:"servings"`
	Difficulty   string       `json:"difficulty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Lines        []RecipeLine `json:"ingredients"`
}

// NewRecipeLines converts stored lines. Ingredient must be preloaded.
func NewRecipeLines(lines []models.RecipeIngredient) []RecipeLine {
	out := make([]RecipeLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, RecipeLine{
			ID:             l.ID,
			IngredientID:   l.IngredientID,
			IngredientName: l.Ingredient.Name,
			Quantity:       l.Quantity.StringFixed(2),
			Unit:           l.Unit,
			Notes:          l.Notes,
		})
	}
	return out
}

// NewRecipeDetail converts a recipe with User, Category and Lines.Ingredient preloaded
func NewRecipeDetail(r *models.Recipe) *RecipeDetail {
	d := &RecipeDetail{
		ID:           r.ID,
		Owner:        r.User.Username,
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime(),
		Servings:     r.Servings,
		Difficulty:   string(r.Difficulty),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Lines:        NewRecipeLines(r.Lines),
	}
	if r.Category != nil {
		d.CategoryName = r.Category.Name
	}
	return d
}

// NewRecipeSummary converts a recipe with User and Category preloaded
func NewRecipeSummary(r *models.Recipe, ingredientCount int) RecipeSummary {
	s := RecipeSummary{
		ID:              r.ID,
		Owner:           r.User.Username,
		CategoryID:      r.CategoryID,
		Name:            r.Name,
		Description:     r.Description,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime(),
		Servings:        r.Servings,
		Difficulty:      string(r.Difficulty),
		CreatedAt:       r.CreatedAt,
		IngredientCount: ingredientCount,
	}
	if r.Category != nil {
		s.CategoryName = r.Category.Name
	}
	return s
}
