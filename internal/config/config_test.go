package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != defaultBaseURL {
		t.Errorf("unexpected base url: %s", cfg.Site.BaseURL)
	}
	if cfg.Contact.Sink != SinkLog {
		t.Errorf("expected log sink, got %s", cfg.Contact.Sink)
	}
	if cfg.Contact.RatePerMinute != defaultContactPerMin {
		t.Errorf("unexpected contact rate: %d", cfg.Contact.RatePerMinute)
	}
	if cfg.Catalog.PerPage != 6 {
		t.Errorf("unexpected page size: %d", cfg.Catalog.PerPage)
	}
	if cfg.Production() {
		t.Errorf("default environment should not be production")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                         "7070",
		"LASWELL_READ_TIMEOUT":         "5s",
		"LASWELL_BASE_URL":             "https://laswell.example/",
		"LASWELL_ENV":                  "Production",
		"LASWELL_LOG_LEVEL":            "DEBUG",
		"LASWELL_SESSION_HASH_KEY":     strings.Repeat("k", 32),
		"LASWELL_SESSION_BLOCK_KEY":    strings.Repeat("b", 16),
		"LASWELL_CONTACT_SINK":         "none",
		"LASWELL_CONTACT_RATE_PER_MIN": "0",
		"LASWELL_PRODUCTS_PER_PAGE":    "9",
	}
	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected PORT fallback, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != "https://laswell.example" {
		t.Errorf("base url should drop trailing slash, got %s", cfg.Site.BaseURL)
	}
	if !cfg.Production() {
		t.Errorf("expected production")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
	if cfg.Contact.Sink != SinkNone || cfg.Contact.RatePerMinute != 0 {
		t.Errorf("unexpected contact config %+v", cfg.Contact)
	}
	if cfg.Catalog.PerPage != 9 {
		t.Errorf("unexpected per page %d", cfg.Catalog.PerPage)
	}

	env["LASWELL_PORT"] = "9000"
	cfg, err = Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("LASWELL_PORT should win over PORT, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"LASWELL_PORT":              "http",
		"LASWELL_BASE_URL":          "not a url",
		"LASWELL_CONTACT_SINK":      "smtp",
		"LASWELL_PRODUCTS_PER_PAGE": "500",
		"LASWELL_ENV":               "production",
		"LASWELL_SESSION_BLOCK_KEY": "short",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Server.Port", "Site.BaseURL", "Contact.Sink", "Catalog.PerPage", "Session.HashKey", "Session.BlockKey"}
	got := strings.Join(verr.Fields(), ",")
	if got != strings.Join(want, ",") {
		t.Errorf("unexpected fields %s", got)
	}
}

func TestLoadReadsDotEnvBelowExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local\nexport LASWELL_PORT=\"8181\"\nLASWELL_LOG_LEVEL=warn\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := Load(context.Background(),
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"LASWELL_LOG_LEVEL": "error"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8181" {
		t.Errorf("expected port from .env, got %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("explicit map should win over .env, got %s", cfg.Log.Level)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, WithoutSystemEnv(), WithEnvFile("")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
