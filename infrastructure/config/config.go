package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	AllowedOrigin string

	// AWS configuration
	AWSRegion       string
	LinksTable      string
	CategoriesTable string

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool

	// HTTP timeouts in seconds
	ReadTimeout  int
	WriteTimeout int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		AWSRegion:       getEnv("AWS_REGION", "eu-central-1"),
		LinksTable:      getEnv("TABLE_NAME", "brainpin-links"),
		CategoriesTable: getEnv("CATEGORIES_TABLE_NAME", "brainpin-categories"),

		IsLambda: getEnvBool("IS_LAMBDA", os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),

		ReadTimeout:  getEnvInt("READ_TIMEOUT", 15),
		WriteTimeout: getEnvInt("WRITE_TIMEOUT", 15),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.LinksTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.CategoriesTable == "" {
		return fmt.Errorf("CATEGORIES_TABLE_NAME is required")
	}
	if c.Environment == "production" && c.AllowedOrigin == "*" {
		return fmt.Errorf("ALLOWED_ORIGIN must be set in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
