package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/policy"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultOrdering = "-created_at"

// orderable maps the accepted ordering keys to columns
var orderable = map[string]string{
	"created_at": "recipes.created_at",
	"prep_time":  "recipes.prep_time",
	"cook_time":  "recipes.cook_time",
	"name":       "recipes.name",
}

// RecipeService handles recipe operations
type RecipeService struct {
	db          *gorm.DB
	policy      policy.Policy
	categories  CategoryLookup
	ingredients IngredientLookup
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, p policy.Policy, categories CategoryLookup, ingredients IngredientLookup) *RecipeService {
	return &RecipeService{
		db:          db,
		policy:      p,
		categories:  categories,
		ingredients: ingredients,
	}
}

// CreateRecipe validates the request and stores the recipe together with its
// initial lines in one transaction. The owner is always the principal.
func (s *RecipeService) CreateRecipe(ctx context.Context, principal *types.Principal, req *types.CreateRecipeRequest) (*types.RecipeDetail, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("authentication required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Instructions = strings.TrimSpace(req.Instructions)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	servings := 1
	if req.Servings != nil {
		servings = *req.Servings
	}

	if err := s.requireAccount(ctx, principal); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.InvalidArgument("category %s does not exist", req.CategoryID)
		}
	}

	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(ctx, principal.UserID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("you already have a recipe named %q", req.Name)
	}

	recipe := models.Recipe{
		UserID:       principal.UserID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  strings.TrimSpace(req.Description),
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     servings,
		Difficulty:   difficulty,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
			if err := tx.Omit(clause.Associations).Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, apperr.Conflict("you already have a recipe named %q", req.Name)
		case isForeignKeyViolation(err):
			if err := s.requireAccount(ctx, principal); err != nil {
				return nil, err
			}
			return nil, apperr.InvalidArgument("recipe references a category or ingredient that does not exist")
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	return s.detail(ctx, recipe.ID)
}

// requireAccount rejects a principal whose user row is gone. A token issued
// before the account was deleted still verifies when revocation is
// unavailable.
func (s *RecipeService) requireAccount(ctx context.Context, principal *types.Principal) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", principal.UserID).Count(&count).Error; err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if count == 0 {
		return apperr.Unauthorized("account no longer exists")
	}
	return nil
}

// buildLines validates the initial lines of a new recipe. Unknown
// ingredients are invalid input here; a repeated ingredient is a conflict.
func (s *RecipeService) buildLines(ctx context.Context, reqs []types.LineRequest) ([]models.RecipeIngredient, error) {
	lines := make([]models.RecipeIngredient, 0, len(reqs))
	seen := make(map[uuid.UUID]bool, len(reqs))
	for i, lr := range reqs {
		if err := validateQuantity(lr.Quantity); err != nil {
			return nil, fmt.Errorf("ingredients[%d]: %w", i, err)
		}
		ingredient, err := s.ingredients.GetIngredient(ctx, lr.IngredientID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.InvalidArgument("ingredients[%d]: ingredient %s does not exist", i, lr.IngredientID)
			}
			return nil, err
		}
		if seen[lr.IngredientID] {
			return nil, apperr.Conflict("ingredient %q is listed more than once", ingredient.Name)
		}
		seen[lr.IngredientID] = true

		lines = append(lines, newLine(ingredient, lr))
	}
	return lines, nil
}

func newLine(ingredient *models.Ingredient, lr types.LineRequest) models.RecipeIngredient {
	unit := strings.TrimSpace(lr.Unit)
	if unit == "" {
		unit = ingredient.DefaultUnit
	}
	return models.RecipeIngredient{
		IngredientID: ingredient.ID,
		Quantity:     lr.Quantity,
		Unit:         unit,
		Notes:        strings.TrimSpace(lr.Notes),
	}
}

// GetRecipe retrieves a recipe by ID if the policy lets the principal see it
func (s *RecipeService) GetRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.RecipeDetail, error) {
	recipe, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanRead(principal, recipe.UserID); err != nil {
		return nil, err
	}
	return types.NewRecipeDetail(recipe), nil
}

// UpdateRecipe applies the supplied fields only. The record lookup comes
// first, then the write check, then validation.
func (s *RecipeService) UpdateRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeDetail, error) {
	recipe, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(principal, recipe.UserID); err != nil {
		return nil, err
	}

	updates, err := s.updateSet(ctx, req)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"].(string); ok && name != recipe.Name {
		taken, err := s.nameTaken(ctx, recipe.UserID, name, recipe.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("you already have a recipe named %q", name)
		}
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).
			Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Omit(clause.Associations).
			Updates(updates).Error
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return nil, apperr.Conflict("you already have a recipe named %q", updates["name"])
			case isForeignKeyViolation(err):
				return nil, apperr.InvalidArgument("category does not exist")
			}
			return nil, fmt.Errorf("update recipe: %w", err)
		}
	}

	return s.detail(ctx, recipe.ID)
}

// updateSet validates req field by field and returns the column changes
func (s *RecipeService) updateSet(ctx context.Context, req *types.UpdateRecipeRequest) (map[string]any, error) {
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
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Instructions != nil {
		instructions := strings.TrimSpace(*req.Instructions)
		if instructions == "" {
			return nil, apperr.InvalidArgument("instructions may not be blank")
		}
		updates["instructions"] = instructions
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.CookTime != nil {
		updates["cook_time"] = *req.CookTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Difficulty != nil {
		if strings.TrimSpace(*req.Difficulty) == "" {
			return nil, apperr.InvalidArgument("difficulty must be one of easy, medium, hard")
		}
		d, err := parseDifficulty(*req.Difficulty)
		if err != nil {
			return nil, err
		}
		updates["difficulty"] = string(d)
	}
	if req.Category.Set {
		if req.Category.Value == nil {
			updates["category_id"] = nil
		} else {
			ok, err := s.categories.Exists(ctx, *req.Category.Value)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, apperr.InvalidArgument("category %s does not exist", req.Category.Value)
			}
			updates["category_id"] = *req.Category.Value
		}
	}
	return updates, nil
}

// DeleteRecipe removes the recipe and its lines
func (s *RecipeService) DeleteRecipe(ctx context.Context, principal *types.Principal, id uuid.UUID) error {
	recipe, err := s.load(ctx, id, false)
	if err != nil {
		return err
	}
	if err := s.policy.CanWrite(principal, recipe.UserID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete recipe lines: %w", err)
		}
		res := tx.Where("id = ?", recipe.ID).Delete(&models.Recipe{})
		if res.Error != nil {
			return fmt.Errorf("delete recipe: %w", res.Error)
		}
		// lost a race with a concurrent delete
		if res.RowsAffected == 0 {
			return apperr.NotFound("recipe not found")
		}
		return nil
	})
}

// ListRecipes returns the recipes visible to principal under the configured policy
func (s *RecipeService) ListRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error) {
	owner, err := s.policy.Scope(principal)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, s.db.WithContext(ctx), owner, query)
}

// ListOwnRecipes is always scoped to the caller, whatever the policy
func (s *RecipeService) ListOwnRecipes(ctx context.Context, principal *types.Principal, query types.RecipeQuery) ([]types.RecipeSummary, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	owner := principal.UserID
	return s.list(ctx, s.db.WithContext(ctx), &owner, query)
}

// ListCategoryRecipes lists the visible recipes of one category
func (s *RecipeService) ListCategoryRecipes(ctx context.Context, principal *types.Principal, categoryID uuid.UUID) ([]types.RecipeSummary, error) {
	ok, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	owner, err := s.policy.Scope(principal)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, s.db.WithContext(ctx), owner, types.RecipeQuery{CategoryID: &categoryID})
}

// SearchByIngredient returns each visible recipe with at least one line whose
// ingredient name contains term, case-insensitively. Every recipe appears once.
func (s *RecipeService) SearchByIngredient(ctx context.Context, principal *types.Principal, term string) ([]types.RecipeSummary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.InvalidArgument("ingredient search term is required")
	}
	owner, err := s.policy.Scope(principal)
	if err != nil {
		return nil, err
	}

	matching := s.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where(containsFold(s.db, "ingredients.name"), likePattern(term))

	base := s.db.WithContext(ctx).Where("recipes.id IN (?)", matching)
	return s.list(ctx, base, owner, types.RecipeQuery{})
}

func (s *RecipeService) list(ctx context.Context, base *gorm.DB, owner *uuid.UUID, query types.RecipeQuery) ([]types.RecipeSummary, error) {
	order, err := parseOrdering(query.Ordering)
	if err != nil {
		return nil, err
	}

	q := base.Model(&models.Recipe{}).Preload("User").Preload("Category")
	if owner != nil {
		q = q.Where("recipes.user_id = ?", *owner)
	}
	if query.CategoryID != nil {
		q = q.Where("recipes.category_id = ?", *query.CategoryID)
	}
	if query.Difficulty != "" {
		d := models.Difficulty(query.Difficulty)
		if !d.Valid() {
			return nil, apperr.InvalidArgument("difficulty must be one of easy, medium, hard")
		}
		q = q.Where("recipes.difficulty = ?", string(d))
	}
	if term := strings.TrimSpace(query.Search); term != "" {
		like := likePattern(term)
		q = q.Where("("+containsFold(s.db, "recipes.name")+" OR "+containsFold(s.db, "recipes.description")+" OR "+containsFold(s.db, "recipes.instructions")+")",
			like, like, like)
	}
	for _, o := range order {
		q = q.Order(o)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	counts, err := s.lineCounts(ctx, recipes)
	if err != nil {
		return nil, err
	}

	out := make([]types.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, types.NewRecipeSummary(&recipes[i], counts[recipes[i].ID]))
	}
	return out, nil
}

func (s *RecipeService) lineCounts(ctx context.Context, recipes []models.Recipe) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(recipes))
	if len(recipes) == 0 {
		return counts, nil
	}
	ids := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}

	var rows []struct {
		RecipeID uuid.UUID
		Total    int
	}
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count recipe lines: %w", err)
	}
	for _, r := range rows {
		counts[r.RecipeID] = r.Total
	}
	return counts, nil
}

// parseOrdering accepts a comma separated list of keys, each optionally
// prefixed with "-" for descending order. id is appended as a tiebreak.
func parseOrdering(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultOrdering
	}
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		dir := "ASC"
		if strings.HasPrefix(part, "-") {
			dir = "DESC"
			part = part[1:]
		}
		col, ok := orderable[part]
		if !ok {
			return nil, apperr.InvalidArgument("cannot order by %q; use created_at, prep_time, cook_time or name", part)
		}
		if seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, col+" "+dir)
	}
	return append(out, "recipes.id ASC"), nil
}

// likePattern lowercases term and escapes LIKE wildcards
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// containsFold returns a case-insensitive LIKE condition on col for a
// likePattern argument. Postgres folds with ILIKE; SQLite connections fold
// through the Unicode-aware lower() registered by the database package.
func containsFold(db *gorm.DB, col string) string {
	if db.Dialector.Name() == "postgres" {
		return col + ` ILIKE ? ESCAPE '\'`
	}
	return "LOWER(" + col + `) LIKE ? ESCAPE '\'`
}

func (s *RecipeService) nameTaken(ctx context.Context, owner uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ? AND name = ?", owner, name)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check recipe name: %w", err)
	}
	return count > 0, nil
}

// load fetches a recipe, with its associations when full is set
func (s *RecipeService) load(ctx context.Context, id uuid.UUID, full bool) (*models.Recipe, error) {
	q := s.db.WithContext(ctx)
	if full {
		q = q.Preload("User").
			Preload("Category").
			Preload("Lines", func(db *gorm.DB) *gorm.DB {
				return db.Order("recipe_ingredients.created_at ASC, recipe_ingredients.id ASC")
			}).
			Preload("Lines.Ingredient")
	}
	var recipe models.Recipe
	if err := q.First(&recipe, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "recipe")
	}
	return &recipe, nil
}

func (s *RecipeService) detail(ctx context.Context, id uuid.UUID) (*types.RecipeDetail, error) {
	recipe, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return types.NewRecipeDetail(recipe), nil
}
