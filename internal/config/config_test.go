package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestAC700_Config_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Query != "nature" {
		t.Errorf("default query should be nature, got %q", cfg.Query)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("default cache TTL should be 1h, got %v", cfg.CacheTTL)
	}
	if !strings.HasSuffix(cfg.ConfigDir, filepath.Join(".config", "mediamix")) {
		t.Errorf("config dir should default under ~/.config/mediamix, got %q", cfg.ConfigDir)
	}
	if cfg.Theme != "light" || cfg.Addr != DefaultAddr || cfg.NATSSubject != DefaultSubject {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestAC701_Config_EnvironmentOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PEXELS_API_KEY":         "  key-123 ",
		"MEDIAMIX_API_URL":       "http://localhost:9999",
		"MEDIAMIX_CONFIG_DIR":    "/tmp/mm",
		"MEDIAMIX_DEFAULT_QUERY": "ocean",
		"MEDIAMIX_CACHE_TTL":     "5m",
		"MEDIAMIX_THEME":         "dark",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "key-123" {
		t.Errorf("api key should be trimmed, got %q", cfg.APIKey)
	}
	if cfg.APIURL != "http://localhost:9999" || cfg.Query != "ocean" || cfg.Theme != "dark" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("cache TTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.StatePath() != filepath.Join("/tmp/mm", "state.json") {
		t.Errorf("unexpected state path %q", cfg.StatePath())
	}
}

func TestConfig_InvalidCacheTTL(t *testing.T) {
	for _, raw := range []string{"soon", "-1m"} {
		if _, err := FromEnv(envOf(map[string]string{"MEDIAMIX_CACHE_TTL": raw})); err == nil {
			t.Errorf("cache TTL %q should be rejected", raw)
		}
	}
}

func TestAC702_Config_LoadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PEXELS_API_KEY=from-file\nMEDIAMIX_DEFAULT_QUERY=forest\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEDIAMIX_ENV_FILE", path)
	t.Setenv("PEXELS_API_KEY", "")
	os.Unsetenv("PEXELS_API_KEY")
	t.Setenv("MEDIAMIX_DEFAULT_QUERY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "from-file" {
		t.Errorf("api key should come from env file, got %q", cfg.APIKey)
	}
	if cfg.Query != "from-env" {
		t.Errorf("environment should take precedence over env file, got %q", cfg.Query)
	}
}

func TestConfig_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("MEDIAMIX_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	if _, err := Load(); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
