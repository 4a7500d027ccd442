// Package config locates and parses the Resonate client configuration.
//
// Settings come from ~/.config/resonate/config.toml, overridden by the
// RESONATE_API_URL and RESONATE_API_TOKEN environment variables. A .env
// file in the working directory is honored for local development. A
// missing config file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Resonate needs to reach the AudioVault API.
type Config struct {
	APIURL         string
	APIToken       string
	RequestTimeout time.Duration
	LogDir         string
}

const (
	defaultConfigPath = "~/.config/resonate/config.toml"
	defaultAPIURL     = "https://audioretrievalapi.runasp.net/api"
	defaultLogDir     = "~/.local/share/resonate"
	defaultTimeout    = 10 * time.Second

	envAPIURL   = "RESONATE_API_URL"
	envAPIToken = "RESONATE_API_TOKEN"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	// Best effort; absent .env files are the normal case.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultTimeout,
		LogDir:         mustExpand(defaultLogDir),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.withEnvOverrides(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		APIToken       string `toml:"api_token"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogDir         string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.APIURL); url != "" {
		cfg.APIURL = url
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	return cfg.withEnvOverrides(), nil
}

// LogPath returns the path of the client log file.
func (c Config) LogPath() string {
	dir := c.LogDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultLogDir)
	}
	return filepath.Join(dir, "resonate.log")
}

func (c Config) withEnvOverrides() Config {
	if url := strings.TrimSpace(os.Getenv(envAPIURL)); url != "" {
		c.APIURL = url
	}
	if token := strings.TrimSpace(os.Getenv(envAPIToken)); token != "" {
		c.APIToken = token
	}
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
