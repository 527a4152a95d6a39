package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
database:
  url: postgres://localhost/weave
registry:
  url: http://registry:8081/rpc
engine:
  call_timeout_seconds: 30
pipeline:
  analytics_agent: charts
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.URL != "postgres://localhost/weave" {
		t.Fatalf("unexpected database url: %q", cfg.Database.URL)
	}
	if cfg.Registry.URL != "http://registry:8081/rpc" {
		t.Fatalf("unexpected registry url: %q", cfg.Registry.URL)
	}
	if cfg.Engine.CallTimeoutSeconds != 30 {
		t.Fatalf("unexpected call timeout: %d", cfg.Engine.CallTimeoutSeconds)
	}
	if cfg.Pipeline.AnalyticsAgent != "charts" {
		t.Fatalf("unexpected analytics agent: %q", cfg.Pipeline.AnalyticsAgent)
	}
	// Unset sections keep defaults.
	if cfg.Pipeline.ChatAgent != "chat" {
		t.Fatalf("expected default chat agent, got %q", cfg.Pipeline.ChatAgent)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Registry.TimeoutSeconds != 5 {
		t.Fatalf("expected default registry timeout, got %d", cfg.Registry.TimeoutSeconds)
	}
	if cfg.Engine.CallTimeoutSeconds != 10 {
		t.Fatalf("expected default call timeout, got %d", cfg.Engine.CallTimeoutSeconds)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("AGENT_REGISTRY_URL", "http://env:9000/rpc")

	path := writeConfig(t, "database:\n  url: postgres://file/db\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Fatalf("env must override file, got %q", cfg.Database.URL)
	}
	if cfg.Registry.URL != "http://env:9000/rpc" {
		t.Fatalf("env must set registry url, got %q", cfg.Registry.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
