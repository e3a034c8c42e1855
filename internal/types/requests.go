package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineRequest describes one recipe ingredient line, either as part of a
// create request or on its own when adding a line to an existing recipe.
type LineRequest struct {
	IngredientID uuid.UUID       `json:"ingredient" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"max=20"`
	Notes        string          `json:"notes" validate:"max=200"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// The owner is never part of the body.
type CreateRecipeRequest struct {
	Name         string        `json:"name" validate:"required,max=200"`
	Description  string        `json:"description"`
	Instructions string        `json:"instructions" validate:"required"`
	PrepTime     int           `json:"prep_time" validate:"gte=0"`
	CookTime     int           `json:"cook_time" validate:"gte=0"`
	Servings     *int          `json:"servings" validate:"omitempty,gte=1"`
	Difficulty   string        `json:"difficulty"`
	CategoryID   *uuid.UUID    `json:"category"`
	Lines        []LineRequest `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest is an allow-listed partial update. Nil fields are left
// unchanged.
type UpdateRecipeRequest struct {
	Name         *string      `json:"name" validate:"omitempty,max=200"`
	Description  *string      `json:"description"`
	Instructions *string      `json:"instructions"`
	PrepTime     *int         `json:"prep_time" validate:"omitempty,gte=0"`
	CookTime     *int         `json:"cook_time" validate:"omitempty,gte=0"`
	Servings     *int         `json:"servings" validate:"omitempty,gte=1"`
	Difficulty   *string      `json:"difficulty"`
	Category     NullableUUID `json:"category"`
}

// Empty reports whether the request changes nothing.
func (r *UpdateRecipeRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Instructions == nil &&
		r.PrepTime == nil && r.CookTime == nil && r.Servings == nil &&
		r.Difficulty == nil && !r.Category.Set
}

// NullableUUID distinguishes an absent key from an explicit null.
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// MarshalJSON implements json.Marshaler
func (n NullableUUID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// RecipeQuery carries the list filters, search term and ordering.
type RecipeQuery struct {
	CategoryID *uuid.UUID
	Difficulty string
	Search     string
	Ordering   string
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// LoginRequest represents a request to obtain a token
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateCategoryRequest is used by the seeder and by tests
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	DefaultUnit string `json:"default_unit" validate:"max=20"`
	Category    string `json:"category" validate:"max=50"`
}

// UpdateIngredientRequest is a partial update of an ingredient
type UpdateIngredientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	DefaultUnit *string `json:"default_unit" validate:"omitempty,min=1,max=20"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
}
