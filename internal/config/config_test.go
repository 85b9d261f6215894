package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ELLIM_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Error("api base url default missing")
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d, want 10", cfg.API.TimeoutSeconds)
	}
	if cfg.UI.PageSize != 10 {
		t.Errorf("page size = %d, want 10", cfg.UI.PageSize)
	}
	if cfg.Database.Path == "" {
		t.Error("database path default missing")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[api]\nbase_url = \"http://localhost:8080\"\ntimeout_seconds = 3\n\n[ui]\npage_size = 25\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ELLIM_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 3 {
		t.Errorf("timeout = %d, want 3", cfg.API.TimeoutSeconds)
	}
	if cfg.UI.PageSize != 25 {
		t.Errorf("page size = %d, want 25", cfg.UI.PageSize)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("ELLIM_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.UI.PageSize = 50
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UI.PageSize != 50 {
		t.Errorf("page size = %d, want 50", got.UI.PageSize)
	}
}
