package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Genre      string // default genre offered at setup
	Seed       int64  // randomness seed; 0 means derive from the clock
	Encounters bool   // random combat encounters on movement
	LogLevel   string
	LogFile    string
	// GeminiAPIKey enables the AI scenario provider when set; empty means
	// the embedded genre templates are used.
	GeminiAPIKey string
}

// Load reads the configuration from the environment. A .env file is loaded
// when present but is not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Genre:        getEnv("ADVENTURE_GENRE", "fantasy"),
		LogLevel:     getEnv("ADVENTURE_LOG_LEVEL", "INFO"),
		LogFile:      getEnv("ADVENTURE_LOG_FILE", ""),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	seedStr := getEnv("ADVENTURE_SEED", "0")
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADVENTURE_SEED value %q: %w", seedStr, err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Seed = seed

	encStr := getEnv("ADVENTURE_ENCOUNTERS", "true")
	enc, err := strconv.ParseBool(encStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ADVENTURE_ENCOUNTERS value %q: %w", encStr, err)
	}
	cfg.Encounters = enc

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
