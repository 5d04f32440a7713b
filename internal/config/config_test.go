package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	writeConfig(t, "api:\n  base_url: http://localhost:9000/api\n")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.TimeoutSec != 15 {
		t.Errorf("expected default timeout 15, got %d", cfg.API.TimeoutSec)
	}
	if cfg.Cache.StaleAfterSec != 30 {
		t.Errorf("expected default staleness 30s, got %d", cfg.Cache.StaleAfterSec)
	}
	if cfg.Cache.Retries != 1 {
		t.Errorf("expected default retries 1, got %d", cfg.Cache.Retries)
	}
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("NV_TEST_KEY", "sk-test-123")
	writeConfig(t, "expansion:\n  api_key: ${NV_TEST_KEY}\n  base_url: ${NV_TEST_URL:-https://api.groq.com/openai/v1}\n")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Expansion.APIKey != "sk-test-123" {
		t.Errorf("env var not expanded: %q", cfg.Expansion.APIKey)
	}
	if cfg.Expansion.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("default not applied: %q", cfg.Expansion.BaseURL)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	writeConfig(t, "api:\n  base_url: localhost:9000\n")

	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for URL without scheme")
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	writeConfig(t, "logging:\n  level: verbose\n")

	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("nope"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
