package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("api url = %q, want default", cfg.APIURL)
	}
	if cfg.RequestTimeout != defaultTimeout {
		t.Fatalf("timeout = %v, want %v", cfg.RequestTimeout, defaultTimeout)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		`api_url = "https://example.test/api"`,
		`api_token = "tok"`,
		`timeout_seconds = 30`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://example.test/api" {
		t.Fatalf("api url = %q", cfg.APIURL)
	}
	if cfg.APIToken != "tok" {
		t.Fatalf("api token = %q", cfg.APIToken)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a malformed config")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envAPIURL, "https://override.test/api")
	t.Setenv(envAPIToken, "envtok")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://override.test/api" {
		t.Fatalf("api url = %q, want env override", cfg.APIURL)
	}
	if cfg.APIToken != "envtok" {
		t.Fatalf("api token = %q, want env override", cfg.APIToken)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Config{LogDir: "/var/log/resonate"}
	if got := cfg.LogPath(); got != filepath.Join("/var/log/resonate", "resonate.log") {
		t.Fatalf("LogPath = %q", got)
	}
	if got := (Config{}).LogPath(); !strings.HasSuffix(got, "resonate.log") {
		t.Fatalf("default LogPath = %q", got)
	}
}
