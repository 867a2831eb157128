// Package config loads the Penderie configuration file.
//
// The file lives at ~/.config/penderie/config.toml and every field is
// optional; a missing file is not an error. Example:
//
//	api_base_url = "https://shop.example.com/api"
//	db_path = "~/.local/share/penderie/penderie.db"
//	request_timeout = 10
//
// Tilde expansion is performed on paths.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/joiefull/penderie/internal/joiefull"
)

// Config captures everything Penderie needs to reach the Joiefull API and
// its local database.
type Config struct {
	APIBaseURL     string
	DBPath         string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/penderie/config.toml"
	defaultDBPath         = "~/.local/share/penderie/penderie.db"
	defaultTimeoutSeconds = 10
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. Empty or absent fields fall back individually.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:     joiefull.DefaultBaseURL,
		DBPath:         mustExpand(defaultDBPath),
		RequestTimeout: defaultTimeoutSeconds * time.Second,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL     string `toml:"api_base_url"`
		DBPath         string `toml:"db_path"`
		TimeoutSeconds int    `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.DBPath); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	return cfg, nil
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
