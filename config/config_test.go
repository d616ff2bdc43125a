package config

import (
	"testing"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	if cfg.DatabasePort != "5432" {
		t.Errorf("expected default DB port 5432, got %s", cfg.DatabasePort)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("expected default API port 8080, got %d", cfg.APIPort)
	}
	if cfg.EventChannel == "" {
		t.Error("expected a default event channel")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("API_PORT", "9090")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := LoadFromEnv()

	if cfg.DatabaseHost != "db.internal" {
		t.Errorf("expected DB_HOST override, got %s", cfg.DatabaseHost)
	}
	if cfg.APIPort != 9090 {
		t.Errorf("expected API_PORT override, got %d", cfg.APIPort)
	}
	if cfg.AdminPassword != "hunter2" {
		t.Errorf("expected ADMIN_PASSWORD override, got %s", cfg.AdminPassword)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("API_PORT", "not-a-port")
	cfg := LoadFromEnv()
	if cfg.APIPort != 8080 {
		t.Errorf("expected default on malformed int, got %d", cfg.APIPort)
	}
}
