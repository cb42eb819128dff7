package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Limits.MaxConnsPerIP != 5 || cfg.Limits.MaxTotalConns != 1000 {
		t.Errorf("default limits = %+v", cfg.Limits)
	}
	if cfg.Analytics.Path != "" {
		t.Error("analytics journal should be off by default")
	}
	if cfg.Admin.PasswordHash != "" {
		t.Error("admin access should be off by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9999"

[limits]
max_conns_per_ip = 2

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr not overridden: %q", cfg.Server.Addr)
	}
	if cfg.Limits.MaxConnsPerIP != 2 {
		t.Errorf("per-IP limit not overridden: %d", cfg.Limits.MaxConnsPerIP)
	}
	// Fields absent from the file keep their defaults
	if cfg.Limits.MaxTotalConns != 1000 {
		t.Errorf("total limit should keep default, got %d", cfg.Limits.MaxTotalConns)
	}
	if cfg.Server.PublicURL != "http://localhost:8080" {
		t.Errorf("public URL should keep default, got %q", cfg.Server.PublicURL)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed TOML should error")
	}
}
