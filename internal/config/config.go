// Package config loads unwind's file and environment configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment overrides: UNWIND_DATABASE_DSN -> database.dsn.
	EnvPrefix = "UNWIND_"

	maxConfigFileSize = 1024 * 1024
	appDir            = "unwind"
)

type Config struct {
	Database      DatabaseConfig      `koanf:"database"`
	Log           LogConfig           `koanf:"log"`
	Insights      InsightsConfig      `koanf:"insights"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// DatabaseConfig selects the record store. An empty DSN means the SQLite
// file under the config directory; postgres:// and postgresql:// DSNs use
// PostgreSQL.
type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

type LogConfig struct {
	Debug bool   `koanf:"debug"`
	Dir   string `koanf:"dir"`
}

type InsightsConfig struct {
	RecentLimit    int     `koanf:"recent_limit"`
	NudgeThreshold float64 `koanf:"nudge_threshold"`
}

type NotificationsConfig struct {
	MinInterval time.Duration `koanf:"min_interval"`
}

// Dir returns ~/.config/unwind (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(cfg, appDir), nil
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file or env overrides
// exist.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads the YAML file at path, overrides it with UNWIND_ environment
// variables, then fills defaults and validates. A missing file is not an
// error. An empty path uses DefaultPath.
//
// Precedence, highest first:
//  1. Environment variables (UNWIND_INSIGHTS_RECENT_LIMIT, ...)
//  2. YAML config file
//  3. Defaults
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	content, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

// envKey maps UNWIND_SECTION_FIELD_NAME to section.field_name. Only the
// first underscore after the prefix separates the section.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func applyDefaults(cfg *Config) {
	if cfg.Insights.RecentLimit == 0 {
		cfg.Insights.RecentLimit = 10
	}
	if cfg.Insights.NudgeThreshold == 0 {
		cfg.Insights.NudgeThreshold = 6
	}
	if cfg.Notifications.MinInterval == 0 {
		cfg.Notifications.MinInterval = 30 * time.Minute
	}
}

func (c *Config) Validate() error {
	if c.Insights.RecentLimit < 1 || c.Insights.RecentLimit > 500 {
		return fmt.Errorf("invalid insights.recent_limit: %d (must be 1-500)", c.Insights.RecentLimit)
	}
	if c.Insights.NudgeThreshold < 0 || c.Insights.NudgeThreshold > 10 {
		return fmt.Errorf("invalid insights.nudge_threshold: %v (must be 0-10)", c.Insights.NudgeThreshold)
	}
	if c.Notifications.MinInterval < 0 {
		return errors.New("notifications.min_interval cannot be negative")
	}
	return nil
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL store.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// LogDir returns the configured log directory or <config dir>/logs.
func (c *Config) LogDir() (string, error) {
	if c.Log.Dir != "" {
		return c.Log.Dir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
