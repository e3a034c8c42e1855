package mocks

import (
	"context"

	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, principal *types.Principal, req *types.CreateRecipeRequest) (*types.RecipeDetail, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.RecipeDetail, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeDetail, error) {
	args := m.Called(ctx, principal, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, principal, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// ListOwnRecipes mocks the ListOwnRecipes method
func (m *MockRecipeService) ListOwnRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, principal, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// SearchByIngredient mocks the SearchByIngredient method
func (m *MockRecipeService) SearchByIngredient(ctx context.Context, principal *types.Principal, term string) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, principal, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// ListCategoryRecipes mocks the ListCategoryRecipes method
func (m *MockRecipeService) ListCategoryRecipes(ctx context.Context, principal *types.Principal, categoryID uuid.UUID) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, principal, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// AddLine mocks the AddLine method
func (m *MockRecipeService) AddLine(ctx context.Context, principal *types.Principal, recipeID uuid.UUID, req *types.LineRequest) ([]types.RecipeLine, error) {
	args := m.Called(ctx, principal, recipeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeLine), args.Error(1)
}

// RemoveLine mocks the RemoveLine method
func (m *MockRecipeService) RemoveLine(ctx context.Context, principal *types.Principal, recipeID, ingredientID uuid.UUID) ([]types.RecipeLine, error) {
	args := m.Called(ctx, principal, recipeID, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeLine), args.Error(1)
}
