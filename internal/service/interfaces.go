package service

import (
	"context"

	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
)

// IRecipeService defines the interface for recipe and recipe line operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, principal *types.Principal, req *types.CreateRecipeRequest) (*types.RecipeDetail, error)
	GetRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.RecipeDetail, error)
	UpdateRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeDetail, error)
	DeleteRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) error
	ListRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error)
	ListOwnRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error)
	SearchByIngredient(ctx context.Context, principal *types.Principal, term string) ([]types.RecipeSummary, error)
	ListCategoryRecipes(ctx context.Context, principal *types.Principal, categoryID uuid.UUID) ([]types.RecipeSummary, error)
	AddLine(ctx context.Context, principal *types.Principal, recipeID uuid.UUID, req *types.LineRequest) ([]types.RecipeLine, error)
	RemoveLine(ctx context.Context, principal *types.Principal, recipeID, ingredientID uuid.UUID) ([]types.RecipeLine, error)
}

// ICategoryService defines the interface for category reference data
type ICategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// IIngredientService defines the interface for ingredient reference data
type IIngredientService interface {
	ListIngredients(ctx context.Context, search, category string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateIngredient(ctx context.Context, req *types.CreateIngredientRequest) (*models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, req *types.UpdateIngredientRequest) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	Logout(ctx context.Context, claims *types.TokenClaims)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// CategoryLookup is what the recipe repository needs from the category store
type CategoryLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// IngredientLookup is what the recipe repository needs from the ingredient store
type IngredientLookup interface {
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
}
