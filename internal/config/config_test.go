package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default DB_MAX_CONNS 20, got %d", cfg.DBMaxConns)
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev true for default env")
	}
}

func TestValidate_ProductionNeedsSigningKey(t *testing.T) {
	cfg := &Config{Env: "production", DBMaxConns: 20, DBMinConns: 5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production without signing key")
	}

	cfg.AuthSigningKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ConnBounds(t *testing.T) {
	cfg := &Config{Env: "development", DBMaxConns: 2, DBMinConns: 5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when max conns < min conns")
	}
}
