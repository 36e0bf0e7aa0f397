// Package app loads the terminal's configuration from the environment.
package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL    string        // Required-ish: backend base URL (default: http://127.0.0.1:8000/api)
	KeystorePath  string        // Path to the SQLite credential keystore
	MasterKeyPath string        // Optional: file holding the keystore sealing key
	Env           string        // Environment (dev, prod) (default: dev)
	LogLevel      string        // Log level (debug, info, warn, error) (default: info)
	LogFormat     string        // Log format (text, json) (default: text)
	HTTPTimeout   time.Duration // Per-request timeout (default: 15s)
	RateRPS       float64       // Outbound sustained requests per second (default: 20)
	RateBurst     int           // Outbound burst size (default: 40)
}

func LoadConfig() Config {
	// A .env beside the binary is a convenience for development; absence is
	// not an error.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:    getEnvOrDefault("DUKAPOS_API_URL", "http://127.0.0.1:8000/api"),
		KeystorePath:  getEnvOrDefault("DUKAPOS_KEYSTORE", defaultKeystorePath()),
		MasterKeyPath: os.Getenv("DUKAPOS_MASTER_KEY_PATH"),
		Env:           getEnvOrDefault("DUKAPOS_ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "text"),
		HTTPTimeout:   getEnvDurationOrDefault("DUKAPOS_HTTP_TIMEOUT", 15*time.Second),
		RateRPS:       getEnvFloatOrDefault("DUKAPOS_RATE_RPS", 20),
		RateBurst:     getEnvIntOrDefault("DUKAPOS_RATE_BURST", 40),
	}
}

// defaultKeystorePath puts the keystore under the user config directory,
// falling back to the working directory when none is resolvable.
func defaultKeystorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dukapos.db"
	}
	return filepath.Join(dir, "dukapos", "credentials.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
