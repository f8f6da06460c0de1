package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// t.Setenv with "" isolates the test from whatever is set in the
	// environment running the suite.
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/tracker.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "data/tracker.db")
	}
	if cfg.CORSAllowedOrigin != "*" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "*")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, ":memory:")
	}
	if cfg.CORSAllowedOrigin != "https://example.com" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a non-numeric PORT")
	}
}
