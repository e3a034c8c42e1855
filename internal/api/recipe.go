package api

import (
	"net/http"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/middleware"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecipeHandler serves recipes and their ingredient lines
type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// ListRecipes handles GET /recipes with category, difficulty, search and
// ordering filters
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	query, err := recipeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), middleware.Principal(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, recipes)
}

// ListOwnRecipes handles GET /recipes/mine
func (h *RecipeHandler) ListOwnRecipes(c *gin.Context) {
	query, err := recipeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.recipes.ListOwnRecipes(c.Request.Context(), middleware.Principal(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, recipes)
}

// SearchByIngredient handles GET /recipes/search-by-ingredient?ingredient=
func (h *RecipeHandler) SearchByIngredient(c *gin.Context) {
	recipes, err := h.recipes.SearchByIngredient(c.Request.Context(), middleware.Principal(c), c.Query("ingredient"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe handles PUT and PATCH. Both apply only the supplied fields.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), middleware.Principal(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), middleware.Principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddLine handles POST /recipes/:id/ingredients and returns the recipe's lines
func (h *RecipeHandler) AddLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.LineRequest
	if !bindJSON(c, &req) {
		return
	}
	lines, err := h.recipes.AddLine(c.Request.Context(), middleware.Principal(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lines)
}

// RemoveLine handles DELETE /recipes/:id/ingredients/:ingredient_id
func (h *RecipeHandler) RemoveLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(c, "ingredient_id")
	if !ok {
		return
	}
	lines, err := h.recipes.RemoveLine(c.Request.Context(), middleware.Principal(c), id, ingredientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func recipeQuery(c *gin.Context) (types.RecipeQuery, error) {
	q := types.RecipeQuery{
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, apperr.InvalidArgument("category must be a valid id")
		}
		q.CategoryID = &id
	}
	return q, nil
}

// pathID parses a uuid path parameter. Anything that is not an id cannot
// name a resource, so it is answered with 404.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}
