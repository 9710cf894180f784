package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	BaseURL   string
	Database  DatabaseConfig
	Blob      BlobConfig
	Converter ConverterConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// BlobConfig holds file storage configuration
type BlobConfig struct {
	Root         string
	SweepMaxAge  int // hours; temp artifacts older than this are swept
	SweepMinutes int // sweep interval
}

// ConverterConfig holds DOCX->PDF converter configuration
type ConverterConfig struct {
	Binary  string
	Timeout int // seconds
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3310"),
		JWTSecret: jwtSecret,
		BaseURL:   getEnv("BASE_URL", "http://localhost:3310"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "certifier"),
		},
		Blob: BlobConfig{
			Root:         getEnv("BLOB_ROOT", "./media"),
			SweepMaxAge:  getEnvInt("SWEEP_MAX_AGE_HOURS", 24),
			SweepMinutes: getEnvInt("SWEEP_INTERVAL_MINUTES", 60),
		},
		Converter: ConverterConfig{
			Binary:  getEnv("CONVERTER_BIN", "soffice"),
			Timeout: getEnvInt("CONVERT_TIMEOUT_SECONDS", 120),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
