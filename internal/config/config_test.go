package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.yaml"), dir)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, "shutterflow.db"), cfg.Storage.Path)
	assert.Equal(t, 1200, cfg.Media.MaxDimension)
	assert.Equal(t, 70, cfg.Media.JPEGQuality)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
storage:
  driver: memory
logging:
  level: debug
media:
  max_dimension: 800
export:
  exported_by: "Bureau de contrôle"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 800, cfg.Media.MaxDimension)
	assert.Equal(t, 70, cfg.Media.JPEGQuality, "unset fields keep defaults")
	assert.Equal(t, "Bureau de contrôle", cfg.Export.ExportedBy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o644))

	t.Setenv("SHUTTERFLOW_STORAGE_DRIVER", "sqlite")
	t.Setenv("SHUTTERFLOW_DB", filepath.Join(dir, "custom.db"))
	t.Setenv("SHUTTERFLOW_METRICS_FILE", filepath.Join(dir, "metrics.prom"))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, "custom.db"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(dir, "metrics.prom"), cfg.Metrics.Textfile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "unknown storage driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }, "postgres_dsn"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = DriverRedis; c.Storage.RedisAddr = "" }, "redis_addr"},
		{"bad quality", func(c *Config) { c.Media.JPEGQuality = 0 }, "jpeg_quality"},
		{"bad dimension", func(c *Config) { c.Media.MaxDimension = -1 }, "max_dimension"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
	assert.NoError(t, Default(t.TempDir()).Validate())
}
