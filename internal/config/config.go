// Package config loads service configuration from environment
// variables. The Config is read once at startup and treated as
// immutable afterwards — nothing re-reads the environment at runtime.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs to start.
type Config struct {
	Port              int    // PORT, default 8080
	DBPath            string // DB_PATH, default data/tracker.db (":memory:" works too)
	CORSAllowedOrigin string // CORS_ALLOWED_ORIGIN, default "*"
	LogLevel          string // LOG_LEVEL: debug|info|warn|error, default info
}

// Load reads the environment and applies defaults. The only way Load
// fails is a PORT value that is not an integer — every other variable
// has a usable default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              8080,
		DBPath:            "data/tracker.db",
		CORSAllowedOrigin: "*",
		LogLevel:          "info",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGIN"); v != "" {
		cfg.CORSAllowedOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
