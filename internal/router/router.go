package router

import (
	"github.com/Nathan-Omenge/recipe-management-api/internal/api"
	"github.com/Nathan-Omenge/recipe-management-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options carries what the route table needs besides the handlers
type Options struct {
	Logger                   *zap.Logger
	Redis                    *redis.Client
	CORSAllowedOrigins       []string
	RecipeCreateLimitPerHour int
	RecipeModifyLimitPerHour int
}

// SetupRouter configures the application routes
func SetupRouter(h *api.Handlers, auth middleware.TokenValidator, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	requireAuth := middleware.AuthMiddleware(auth)
	optionalAuth := middleware.OptionalAuth(auth)
	createLimit := middleware.NewRecipeCreationRateLimiter(opts.Redis, opts.RecipeCreateLimitPerHour, logger).RateLimitMiddleware()
	modifyLimit := middleware.NewRecipeModificationRateLimiter(opts.Redis, opts.RecipeModifyLimitPerHour, logger).PerRecipeRateLimitMiddleware()

	// Health check endpoint (no auth required)
	router.GET("/health", h.Health.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.HealthCheck)

	// Auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)

		profile := authGroup.Group("/profile", requireAuth)
		profile.GET("", h.Profile.GetProfile)
		profile.PUT("", h.Profile.UpdateProfile)
		profile.PATCH("", h.Profile.UpdateProfile)
		profile.DELETE("", h.Profile.DeleteAccount)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Categories.ListCategories)
		categories.GET("/:id", h.Categories.GetCategory)
		categories.GET("/:id/recipes", optionalAuth, h.Categories.ListRecipes)
	}

	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredients.ListIngredients)
		ingredients.GET("/:id", h.Ingredients.GetIngredient)
		ingredients.POST("", requireAuth, h.Ingredients.CreateIngredient)
		ingredients.PUT("/:id", requireAuth, h.Ingredients.UpdateIngredient)
		ingredients.PATCH("/:id", requireAuth, h.Ingredients.UpdateIngredient)
		ingredients.DELETE("/:id", requireAuth, h.Ingredients.DeleteIngredient)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", optionalAuth, h.Recipes.ListRecipes)
		recipes.GET("/mine", requireAuth, h.Recipes.ListOwnRecipes)
		recipes.GET("/search-by-ingredient", optionalAuth, h.Recipes.SearchByIngredient)
		recipes.GET("/:id", optionalAuth, h.Recipes.GetRecipe)
		recipes.POST("", requireAuth, createLimit, h.Recipes.CreateRecipe)
		recipes.PUT("/:id", requireAuth, modifyLimit, h.Recipes.UpdateRecipe)
		recipes.PATCH("/:id", requireAuth, modifyLimit, h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, modifyLimit, h.Recipes.DeleteRecipe)
		recipes.POST("/:id/ingredients", requireAuth, modifyLimit, h.Recipes.AddLine)
		recipes.DELETE("/:id/ingredients/:ingredient_id", requireAuth, modifyLimit, h.Recipes.RemoveLine)
	}

	return router
}
