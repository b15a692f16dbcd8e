package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven application settings. Everything the user
// changes at runtime (API key, selected city) lives in the settings table
// instead.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// HomeCountry sorts first in city listings and scopes the name backfill.
	HomeCountry string

	// HTTPTimeout bounds each weather API round-trip.
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment, consulting a .env file when
// present, with defaults matching the original application.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:      getenvDefault("WEATHER_DB_PATH", "weather.db"),
		HomeCountry: getenvDefault("WEATHER_HOME_COUNTRY", "RU"),
	}

	timeoutStr := getenvDefault("WEATHER_HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
