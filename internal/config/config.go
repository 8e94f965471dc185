// Package config loads bookshelf settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything bookshelf reads at startup.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogPath        string
	LogLevel       slog.Level
}

const (
	defaultConfigPath     = "~/.config/bookshelf/config.toml"
	defaultLogPath        = "~/.local/state/bookshelf/bookshelf.log"
	defaultAPIURL         = "https://books-api-jbci.onrender.com"
	defaultRequestTimeout = 10 * time.Second

	envAPIURL   = "BOOKSHELF_API_URL"
	envLogLevel = "BOOKSHELF_LOG_LEVEL"
	envLogPath  = "BOOKSHELF_LOG_PATH"
)

// Load reads the config at path (the default location when empty), then
// applies environment overrides. A .env file in the working directory is
// loaded first when present. A missing config file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		LogPath:        mustExpand(defaultLogPath),
		LogLevel:       slog.LevelInfo,
	}

	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogPath        string `toml:"log_path"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("parse config: request_timeout %q is not a positive duration", v)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		c.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		c.LogLevel = level
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogPath)); v != "" {
		c.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		c.LogLevel = level
	}
	return nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
	return level, nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
