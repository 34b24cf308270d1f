// Package config centralizes environment configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port             int
	DBPath           string
	AllowOrigins     []string
	DayCloseInterval time.Duration
	LogLevel         string
}

// Load reads .env (when present) and the process environment, applying
// development-friendly defaults so `go run ./cmd/server` just works.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid PORT %q", portStr)
	}
	cfg.Port = port

	cfg.DBPath = getEnv("DB_PATH", "timeclock.db")

	origins := getEnv("ALLOW_ORIGINS", "http://localhost:5173,http://localhost:8080")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	interval, err := parseDurationEnv("DAY_CLOSE_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.DayCloseInterval = interval

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
