package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/budget_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("Expected default token TTL of 24h, got %v", cfg.TokenTTL)
	}
	if cfg.Env != "development" {
		t.Errorf("Expected default env 'development', got %s", cfg.Env)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("Expected default CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("Expected token TTL of 2h, got %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Error("Expected an error when DATABASE_URL is missing")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/budget_test")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Expected an error when JWT_SECRET is missing")
	}
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	setRequiredEnv(t)

	for _, ttl := range []string{"abc", "0", "-3"} {
		t.Setenv("TOKEN_TTL_HOURS", ttl)
		if _, err := Load(); err == nil {
			t.Errorf("Expected an error for TOKEN_TTL_HOURS=%s", ttl)
		}
	}
}
