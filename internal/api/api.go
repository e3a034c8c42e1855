package api

import (
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"gorm.io/gorm"
)

// Handlers bundles every HTTP handler of the API
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Categories  *CategoryHandler
	Ingredients *IngredientHandler
	Recipes     *RecipeHandler
}

// Services are the collaborators the handlers delegate to
type Services struct {
	Auth        service.IAuthService
	Profile     service.IProfileService
	Categories  service.ICategoryService
	Ingredients service.IIngredientService
	Recipes     service.IRecipeService
}

func NewHandlers(db *gorm.DB, svc Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(db),
		Auth:        NewAuthHandler(svc.Auth),
		Profile:     NewProfileHandler(svc.Profile, svc.Auth),
		Categories:  NewCategoryHandler(svc.Categories, svc.Recipes),
		Ingredients: NewIngredientHandler(svc.Ingredients),
		Recipes:     NewRecipeHandler(svc.Recipes),
	}
}
