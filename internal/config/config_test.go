package config_test

import (
	"strings"
	"testing"

	"adboard/internal/config"
)

const goodSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADBOARD_SESSION_SECRET", goodSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DatabasePath != "adboard.db" {
		t.Errorf("DatabasePath = %q, want adboard.db", cfg.DatabasePath)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should default to true")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if !cfg.StrictEmptyResults {
		t.Error("StrictEmptyResults should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADBOARD_SESSION_SECRET", goodSecret)
	t.Setenv("ADBOARD_ADDR", ":9090")
	t.Setenv("ADBOARD_STRICT_EMPTY_RESULTS", "false")
	t.Setenv("ADBOARD_BCRYPT_COST", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.StrictEmptyResults {
		t.Error("StrictEmptyResults should be overridable")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("ADBOARD_SESSION_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected an error for a missing session secret")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("ADBOARD_SESSION_SECRET", "too-short")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "32 characters") {
		t.Fatalf("expected a short secret error, got %v", err)
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	t.Setenv("ADBOARD_SESSION_SECRET", goodSecret)
	t.Setenv("ADBOARD_BCRYPT_COST", "20")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "BCRYPT_COST") {
		t.Fatalf("expected a bcrypt cost error, got %v", err)
	}
}
