package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var supportedDrivers = map[string]bool{
	"postgres": true,
	"sqlite":   true,
}

// ValidateConfig checks the loaded configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		if GetEnvironment() == Production {
			add("JWT_SECRET", "jwt_secret secret is required")
		} else {
			add("JWT_SECRET", "environment variable is required")
		}
	}

	if !supportedDrivers[cfg.DBDriver] {
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q (want postgres or sqlite)", cfg.DBDriver))
	}
	if cfg.DBDriver == "postgres" {
		if cfg.DBHost == "" {
			add("DB_HOST", "required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "required for the postgres driver")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "required for the postgres driver")
		}
	}
	if cfg.DBDriver == "sqlite" && cfg.DBPath == "" {
		add("DB_PATH", "required for the sqlite driver")
	}

	switch cfg.RecipeVisibility {
	case VisibilityOwnerPrivate, VisibilityPublicRead:
	default:
		add("RECIPE_VISIBILITY", fmt.Sprintf("unknown mode %q (want %s or %s)",
			cfg.RecipeVisibility, VisibilityOwnerPrivate, VisibilityPublicRead))
	}

	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}
	if cfg.RecipeCreateLimitPerHour < 0 {
		add("RATE_LIMIT_RECIPE_CREATE_PER_HOUR", "must not be negative")
	}
	if cfg.RecipeModifyLimitPerHour < 0 {
		add("RATE_LIMIT_RECIPE_MODIFY_PER_HOUR", "must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
