package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/log"
	"github.com/cleared-dev/tally/internal/store"
)

// FileName is the project config file at the root of a tally directory.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// StorageConfig selects where records are persisted. Relative paths are
// resolved against the project directory.
type StorageConfig struct {
	Backend    string `yaml:"backend" env:"TALLY_STORAGE_BACKEND"` // file, sqlite or memory
	Dir        string `yaml:"dir" env:"TALLY_DATA_DIR"`
	SQLitePath string `yaml:"sqlite_path" env:"TALLY_SQLITE_PATH"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level" env:"TALLY_LOG_LEVEL"`
}

// AnalyticsConfig tunes the dashboard and reports.
type AnalyticsConfig struct {
	SeriesMonths int `yaml:"series_months"`
	RecentCount  int `yaml:"recent_count"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    string(store.BackendFile),
			Dir:        "data",
			SQLitePath: filepath.Join("data", "tally.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
		Analytics: AnalyticsConfig{
			SeriesMonths: 12,
			RecentCount:  5,
		},
	}
}

// ApplyEnv overrides fields from TALLY_* variables in environ. A nil environ
// means the process environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch store.BackendType(c.Storage.Backend) {
	case store.BackendFile:
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage.dir is required for the file backend"))
		}
	case store.BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite backend"))
		}
	case store.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: want file, sqlite or memory", c.Storage.Backend))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Analytics.SeriesMonths < 1 {
		errs = append(errs, fmt.Errorf("analytics.series_months must be at least 1, got %d", c.Analytics.SeriesMonths))
	}
	if c.Analytics.RecentCount < 1 {
		errs = append(errs, fmt.Errorf("analytics.recent_count must be at least 1, got %d", c.Analytics.RecentCount))
	}
	return errors.Join(errs...)
}

// BackendConfig resolves the storage settings against the project directory.
func (c *Config) BackendConfig(projectDir string) store.BackendConfig {
	return store.BackendConfig{
		Type:       store.BackendType(c.Storage.Backend),
		Dir:        resolve(projectDir, c.Storage.Dir),
		SQLitePath: resolve(projectDir, c.Storage.SQLitePath),
	}
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
