package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "recipe_rack", cfg.DBName)
}

func TestLoadConfigSQLiteDriver(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/recipes.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/recipes.db", cfg.DBPath)
}

func TestValidateConfigRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.ServerPort = "" }},
		{"non-numeric port", func(c *Config) { c.ServerPort = "eighty" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongodb" }},
		{"postgres without host", func(c *Config) { c.DBHost = "" }},
		{"sqlite without path", func(c *Config) { c.DBDriver = "sqlite"; c.DBPath = "" }},
		{"negative redis db", func(c *Config) { c.RedisDB = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ServerPort: "8080",
				DBDriver:   "postgres",
				DBHost:     "localhost",
				DBPort:     "5432",
				DBUser:     "postgres",
				DBName:     "recipe_rack",
				DBPath:     "recipes.db",
			}
			tt.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}
