package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the service
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Environment string

	// Casdoor authentication
	CasdoorEndpoint     string
	CasdoorClientID     string
	CasdoorClientSecret string
	CasdoorCertificate  string
	CasdoorOrganization string
	CasdoorApplication  string
}

// LoadConfig reads configuration from the environment, loading .env first
// when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Environment: getEnv("ENVIRONMENT", "development"),

		CasdoorEndpoint:     getEnv("CASDOOR_ENDPOINT", ""),
		CasdoorClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
		CasdoorClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
		CasdoorCertificate:  getEnv("CASDOOR_CERTIFICATE", ""),
		CasdoorOrganization: getEnv("CASDOOR_ORGANIZATION", ""),
		CasdoorApplication:  getEnv("CASDOOR_APPLICATION", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CasdoorEnabled reports whether Casdoor token authentication is configured
func (c *Config) CasdoorEnabled() bool {
	return c.CasdoorEndpoint != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
