package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultPort     = "9000"
	defaultLogLevel = "info"
)

// Config captures runtime configuration loaded from environment variables.
// The JWT secret is loaded once here and never rotated at runtime.
type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
}

// Load reads configuration values from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

// Address returns the listen address for the HTTP server.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
