package api

import (
	"net/http"

	"github.com/Nathan-Omenge/recipe-management-api/internal/middleware"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the read-only category catalogue
type CategoryHandler struct {
	categories service.ICategoryService
	recipes    service.IRecipeService
}

func NewCategoryHandler(categories service.ICategoryService, recipes service.IRecipeService) *CategoryHandler {
	return &CategoryHandler{categories: categories, recipes: recipes}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListRecipes handles GET /categories/:id/recipes
func (h *CategoryHandler) ListRecipes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipes, err := h.recipes.ListCategoryRecipes(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, recipes)
}
