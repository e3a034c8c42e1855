package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	"github.com/Nathan-Omenge/recipe-management-api/internal/api"
	"github.com/Nathan-Omenge/recipe-management-api/internal/database"
	"github.com/Nathan-Omenge/recipe-management-api/internal/policy"
	"github.com/Nathan-Omenge/recipe-management-api/internal/router"
	"github.com/Nathan-Omenge/recipe-management-api/internal/server"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(config.GetEnvironment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Info("database schema migrated")
	}

	// Redis is optional. Without it rate limiting, token revocation and the
	// category cache are disabled.
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	recipePolicy, err := policy.New(cfg.RecipeVisibility)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, redisClient, logger)
	categoryService := service.NewCategoryService(db, redisClient, logger)
	ingredientService := service.NewIngredientService(db)

	handlers := api.NewHandlers(db, api.Services{
		Auth:        authService,
		Profile:     service.NewProfileService(db),
		Categories:  categoryService,
		Ingredients: ingredientService,
		Recipes:     service.NewRecipeService(db, recipePolicy, categoryService, ingredientService),
	})

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.SetupRouter(handlers, authService, router.Options{
		Logger:                   logger,
		Redis:                    redisClient,
		CORSAllowedOrigins:       cfg.CORSAllowedOrigins,
		RecipeCreateLimitPerHour: cfg.RecipeCreateLimitPerHour,
		RecipeModifyLimitPerHour: cfg.RecipeModifyLimitPerHour,
	})

	logger.Info("starting server",
		zap.String("visibility", recipePolicy.Mode()),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("redis", redisClient != nil),
	)
	return server.New(cfg.ServerHost, cfg.ServerPort, engine, logger).Run(ctx)
}

// newLogger builds a JSON logger in production and a console logger
// everywhere else
func newLogger(env config.Environment, level string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if env == config.Production {
		zcfg = zap.NewProductionConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = lvl
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		zcfg.Encoding = "json"
	}
	return zcfg.Build()
}
