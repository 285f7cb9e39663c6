// Package config loads shutterflow settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all shutterflow configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Media   MediaConfig   `yaml:"media"`
	Export  ExportConfig  `yaml:"export"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver      string `yaml:"driver"`       // sqlite, memory, redis, postgres
	Path        string `yaml:"path"`         // sqlite file
	RedisAddr   string `yaml:"redis_addr"`   // host:port
	RedisDB     int    `yaml:"redis_db"`     // logical database
	PostgresDSN string `yaml:"postgres_dsn"` // postgres://...
	KeyPrefix   string `yaml:"key_prefix"`   // namespaces keys on shared backends
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// MediaConfig controls how note images are downsized before storage.
type MediaConfig struct {
	MaxDimension int `yaml:"max_dimension"`
	JPEGQuality  int `yaml:"jpeg_quality"`
}

type ExportConfig struct {
	Dir        string `yaml:"dir"`
	ExportedBy string `yaml:"exported_by"`
}

type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus metrics of each run.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration rooted at baseDir.
func Default(baseDir string) Config {
	return Config{
		Storage: StorageConfig{
			Driver:    DriverSQLite,
			Path:      filepath.Join(baseDir, "shutterflow.db"),
			RedisAddr: "localhost:6379",
			KeyPrefix: "shutterflow:",
		},
		Logging: LoggingConfig{Level: "warn"},
		Media:   MediaConfig{MaxDimension: 1200, JPEGQuality: 70},
		Export:  ExportConfig{Dir: ".", ExportedBy: "shutterflow"},
	}
}

// DefaultDir returns ~/.shutterflow.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".shutterflow"), nil
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is not an error), then environment overrides.
func Load(path, baseDir string) (Config, error) {
	cfg := Default(baseDir)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SHUTTERFLOW_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("SHUTTERFLOW_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("SHUTTERFLOW_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("SHUTTERFLOW_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Storage.RedisDB = n
		}
	}
	if v := os.Getenv("SHUTTERFLOW_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("SHUTTERFLOW_KEY_PREFIX"); v != "" {
		cfg.Storage.KeyPrefix = v
	}
	if v := os.Getenv("SHUTTERFLOW_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SHUTTERFLOW_LOG_DEV"); v != "" {
		cfg.Logging.Development, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SHUTTERFLOW_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("SHUTTERFLOW_EXPORTED_BY"); v != "" {
		cfg.Export.ExportedBy = v
	}
	if v := os.Getenv("SHUTTERFLOW_METRICS_FILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// Validate rejects configurations that cannot open a backend.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverMemory:
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Media.MaxDimension <= 0 {
		return fmt.Errorf("media.max_dimension must be positive")
	}
	if c.Media.JPEGQuality < 1 || c.Media.JPEGQuality > 100 {
		return fmt.Errorf("media.jpeg_quality must be between 1 and 100")
	}
	return nil
}
