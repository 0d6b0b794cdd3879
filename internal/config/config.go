package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Port            string `mapstructure:"port"`
	DatabaseURL     string `mapstructure:"database_url"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	YouTubeAPIKey   string `mapstructure:"youtube_api_key"`
	AuthTokenSecret string `mapstructure:"auth_token_secret"`
	AdminKeyHash    string `mapstructure:"admin_key_hash"`
	RedisAddr       string `mapstructure:"redis_addr"`
	LogLevel        string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables
// Supports _FILE suffix pattern for reading secrets from files (Docker Swarm style)
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("port", "4600")
	v.SetDefault("log_level", "info")

	// Bind environment variables
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Map of config keys to their env var names
	envBindings := map[string]string{
		"port":              "PORT",
		"database_url":      "DATABASE_URL",
		"gemini_api_key":    "GEMINI_API_KEY",
		"youtube_api_key":   "YOUTUBE_API_KEY",
		"auth_token_secret": "AUTH_TOKEN_SECRET",
		"admin_key_hash":    "ADMIN_KEY_HASH",
		"redis_addr":        "REDIS_ADDR",
		"log_level":         "LOG_LEVEL",
	}

	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", envVar, err)
		}
	}

	cfg := &Config{}

	// Load each config value, checking for _FILE variants first
	cfg.Port = getConfigValue(v, "port", "PORT")
	cfg.DatabaseURL = getConfigValue(v, "database_url", "DATABASE_URL")
	cfg.GeminiAPIKey = getConfigValue(v, "gemini_api_key", "GEMINI_API_KEY")
	cfg.YouTubeAPIKey = getConfigValue(v, "youtube_api_key", "YOUTUBE_API_KEY")
	cfg.AuthTokenSecret = getConfigValue(v, "auth_token_secret", "AUTH_TOKEN_SECRET")
	cfg.AdminKeyHash = getConfigValue(v, "admin_key_hash", "ADMIN_KEY_HASH")
	cfg.RedisAddr = getConfigValue(v, "redis_addr", "REDIS_ADDR")
	cfg.LogLevel = getConfigValue(v, "log_level", "LOG_LEVEL")

	// Validate required config
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthTokenSecret == "" {
		return nil, fmt.Errorf("AUTH_TOKEN_SECRET is required")
	}

	return cfg, nil
}

// getConfigValue checks for FOO_FILE env var first, reads from file if exists,
// otherwise falls back to FOO env var
func getConfigValue(v *viper.Viper, key, envVar string) string {
	// Check for _FILE variant first
	fileEnvVar := envVar + "_FILE"
	if filePath := os.Getenv(fileEnvVar); filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	// Fall back to regular env var via viper
	return v.GetString(key)
}
