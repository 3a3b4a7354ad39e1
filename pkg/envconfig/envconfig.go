package envconfig

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// Load reads environment variables from the given .env files. Missing
// files are reported to the caller but are not fatal: real environments
// configure through the process environment.
func Load(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// GetEnv returns the value of key or fallback when unset
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// GetInt returns the integer value of key or fallback when unset or invalid
func GetInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// GetDuration returns the duration value of key or fallback when unset or invalid
func GetDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// GetLogLevel maps the LOG_LEVEL variable onto a logger level
func GetLogLevel() logger.LogLevel {
	switch GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}
