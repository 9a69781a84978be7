package config

import (
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig verifies the loaded configuration is usable before any
// connection is attempted.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "is required"}
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return ValidationError{Field: "SERVER_PORT", Message: "must be numeric"}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			return ValidationError{Field: "DB_HOST", Message: "is required for the postgres driver"}
		}
		if cfg.DBPort == "" {
			return ValidationError{Field: "DB_PORT", Message: "is required for the postgres driver"}
		}
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "is required for the postgres driver"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DB_NAME", Message: "is required for the postgres driver"}
		}
	case "sqlite":
		if cfg.DBPath == "" {
			return ValidationError{Field: "DB_PATH", Message: "is required for the sqlite driver"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q (expected postgres or sqlite)", cfg.DBDriver)}
	}

	if cfg.RedisDB < 0 {
		return ValidationError{Field: "REDIS_DB", Message: "must not be negative"}
	}

	return nil
}
