// Package config loads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config holds the resolved settings.
type Config struct {
	Backend      Backend
	DataDir      string
	Theme        string
	LogFile      string
	LogLevel     slog.Level
	DefaultRoute string
	Watch        bool
}

const (
	DefaultPath    = "~/.config/tada/config.toml"
	defaultDataDir = "~/.local/share/tada"
	defaultTheme   = "classic"
	logFileName    = "tada.log"

	// DataDirEnv overrides data_dir.
	DataDirEnv = "TADA_DATA_DIR"
)

// Default returns the settings used when no file exists.
func Default() Config {
	dir := mustExpand(defaultDataDir)
	return Config{
		Backend:  BackendJSON,
		DataDir:  dir,
		Theme:    defaultTheme,
		LogFile:  filepath.Join(dir, logFileName),
		LogLevel: slog.LevelInfo,
		Watch:    true,
	}
}

// Load reads path (DefaultPath when empty), falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.applyEnv(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Backend      string `toml:"backend"`
		DataDir      string `toml:"data_dir"`
		Theme        string `toml:"theme"`
		LogFile      string `toml:"log_file"`
		LogLevel     string `toml:"log_level"`
		DefaultRoute string `toml:"default_route"`
		Watch        *bool  `toml:"watch"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if b := strings.ToLower(strings.TrimSpace(raw.Backend)); b != "" {
		cfg.Backend, err = ParseBackend(b)
		if err != nil {
			return Config{}, err
		}
	}
	if d := strings.TrimSpace(raw.DataDir); d != "" {
		cfg.DataDir = mustExpand(d)
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}
	if th := strings.TrimSpace(raw.Theme); th != "" {
		cfg.Theme = th
	}
	if lf := strings.TrimSpace(raw.LogFile); lf != "" {
		cfg.LogFile = mustExpand(lf)
	}
	if lv := strings.TrimSpace(raw.LogLevel); lv != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lv)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}
	cfg.DefaultRoute = strings.TrimSpace(raw.DefaultRoute)
	if raw.Watch != nil {
		cfg.Watch = *raw.Watch
	}
	return cfg.applyEnv(), nil
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	}
	return "", fmt.Errorf("unknown backend %q (want json or sqlite)", s)
}

func (c Config) applyEnv() Config {
	if d := strings.TrimSpace(os.Getenv(DataDirEnv)); d != "" {
		derived := c.LogFile == filepath.Join(c.DataDir, logFileName)
		c.DataDir = mustExpand(d)
		if derived {
			c.LogFile = filepath.Join(c.DataDir, logFileName)
		}
	}
	return c
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
