// Package config loads the gateway configuration from the environment, with
// a .env file picked up in development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the server needs at startup.
type Config struct {
	Port            string
	BackendBaseURL  string
	BackendAPIToken string
	BackendTimeout  time.Duration
	JWTSecret       string
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; missing required values are.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		BackendBaseURL:  os.Getenv("BACKEND_BASE_URL"),
		BackendAPIToken: os.Getenv("BACKEND_API_TOKEN"),
		BackendTimeout:  durationEnv("BACKEND_TIMEOUT_SECONDS", 15*time.Second),
		JWTSecret:       os.Getenv("APP_JWT_SECRET"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
	}

	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("APP_JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
