// Package config loads application settings from the process environment
// using Viper, with defaults matching the original deployment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string

	// Datastore configuration. An empty DatabaseURL disables the datastore
	// features; the API still serves MealDB-only results.
	DatabaseURL string
	DBMaxOpen   int
	DBMaxIdle   int

	// MealDB configuration
	MealDBURL     string
	MealDBTimeout time.Duration

	// Redis configuration (optional; enables the MealDB response cache)
	RedisAddr     string
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Logging
	LogDevelopment bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("MEALDB_API_URL", "https://www.themealdb.com/api/json/v1/1/search.php")
	v.SetDefault("MEALDB_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_OPEN", 10)
	v.SetDefault("DB_MAX_IDLE", 1)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_DEV", false)

	// Explicit keys so AutomaticEnv picks them up without a prefix.
	for _, key := range []string{
		"SUPABASE_DB_URL",
		"REDIS_ADDR",
		"REDIS_URL",
		"REDIS_PASSWORD",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("SUPABASE_DB_URL"),
		DBMaxOpen:      v.GetInt("DB_MAX_OPEN"),
		DBMaxIdle:      v.GetInt("DB_MAX_IDLE"),
		MealDBURL:      v.GetString("MEALDB_API_URL"),
		MealDBTimeout:  v.GetDuration("MEALDB_TIMEOUT"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisURL:       v.GetString("REDIS_URL"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		LogDevelopment: v.GetBool("LOG_DEV"),
	}

	return cfg, nil
}

// HasDatastore reports whether a datastore connection string was provided.
func (c *Config) HasDatastore() bool {
	return c.DatabaseURL != ""
}

// HasRedis reports whether a redis endpoint was provided.
func (c *Config) HasRedis() bool {
	return c.RedisAddr != "" || c.RedisURL != ""
}
