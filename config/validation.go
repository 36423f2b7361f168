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

// ValidateConfig checks that the resolved configuration is usable in its environment.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errors []string
	add := func(field, msg string) {
		errors = append(errors, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.StoreDriver {
	case DriverMemory:
		if cfg.Environment == Production {
			add("STORE_DRIVER", "memory store is not allowed in production")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite store")
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			add("DB_HOST", "DB_HOST, DB_NAME and DB_USER are required for the postgres store")
		}
		if cfg.DBPassword == "" && cfg.Environment == Production {
			add("db_password", "secret is required")
		}
	case DriverRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_URL", "REDIS_URL or REDIS_HOST is required for the redis store")
		}
	default:
		add("STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver))
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == CI {
			add("JWT_SECRET", "TEST_JWT_SECRET environment variable is required in CI environment")
		} else {
			add("jwt_secret", "secret is required")
		}
	}
	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}
	if cfg.GatewayDelay < 0 {
		add("GATEWAY_DELAY", "must not be negative")
	}
	if cfg.RecipeCreateLimit <= 0 {
		add("RECIPE_CREATE_LIMIT", "must be positive")
	}
	if cfg.RecipeCreateWindow <= 0 {
		add("RECIPE_CREATE_WINDOW", "must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
