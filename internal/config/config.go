package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration
type Config struct {
	APIBaseURL  string
	StorePath   string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables with sensible defaults
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("LINEAGE_API_URL", "http://localhost:8080/api"),
		StorePath:   getEnv("LINEAGE_STORE_PATH", defaultStorePath()),
		LogLevel:    getEnv("LINEAGE_LOG_LEVEL", "info"),
		HTTPTimeout: 30 * time.Second,
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./lineagehub.db"
	}
	return filepath.Join(home, ".lineagehub", "client.db")
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
