package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration. Driver selects the storage engine backing the
	// recipe collection: "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string // sqlite only

	// Redis configuration (rate limiting + assistant cache). Optional.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Assistant (LLM) configuration. Optional; without an API key the
	// assistant routes are not served.
	AssistantAPIKey string
	AssistantAPIURL string
	AssistantModel  string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: lookup("SERVER_PORT", "8080"),
		ServerHost: lookup("SERVER_HOST", "0.0.0.0"),

		DBDriver:   lookup("DB_DRIVER", "postgres"),
		DBHost:     lookup("DB_HOST", "localhost"),
		DBPort:     lookup("DB_PORT", "5432"),
		DBUser:     lookupSecret("db_user", "DB_USER", "postgres"),
		DBPassword: lookupSecret("db_password", "DB_PASSWORD", ""),
		DBName:     lookup("DB_NAME", "recipe_rack"),
		DBSSLMode:  lookup("DB_SSL_MODE", "disable"),
		DBPath:     lookup("DB_PATH", "recipe_rack.db"),

		RedisHost:     lookup("REDIS_HOST", ""),
		RedisPort:     lookup("REDIS_PORT", "6379"),
		RedisPassword: lookupSecret("redis_password", "REDIS_PASSWORD", ""),
		RedisURL:      lookup("REDIS_URL", ""),

		AssistantAPIKey: lookupSecret("assistant_api_key", "ASSISTANT_API_KEY", ""),
		AssistantAPIURL: lookup("ASSISTANT_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		AssistantModel:  lookup("ASSISTANT_MODEL", "deepseek-chat"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookup returns the environment variable value, or fallback when unset.
func lookup(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// lookupSecret resolves a sensitive value: the environment variable wins,
// then a Docker secret of the given name, then the fallback.
func lookupSecret(secret, envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
