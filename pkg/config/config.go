// Package config loads Slate configuration from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Storage. DatabaseURL selects PostgreSQL when set; otherwise the
	// local SQLite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Engine
	SearchWindowDays int
	MaxSlots         int
}

// Load loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SLATE_DB", defaultSQLitePath()),

		SearchWindowDays: getIntEnv("SLATE_SEARCH_WINDOW_DAYS", 90),
		MaxSlots:         getIntEnv("SLATE_MAX_SLOTS", 10),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesPostgres reports whether a PostgreSQL store is configured.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "slate.db"
	}
	return filepath.Join(home, ".slate", "slate.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
