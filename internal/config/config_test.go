package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "nested", cfg.Layout)
	assert.Empty(t, cfg.InventoryTemplate)
}

func TestLoad_Environment(t *testing.T) {
	tmpl := filepath.Join(t.TempDir(), "inventory.ini.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("[all]\n"), 0o644))

	t.Setenv("GNS3FACTS_LOG_LEVEL", "debug")
	t.Setenv("GNS3FACTS_LOG_FORMAT", "json")
	t.Setenv("GNS3FACTS_TELEMETRY_ENABLED", "true")
	t.Setenv("GNS3FACTS_REQUEST_TIMEOUT", "5s")
	t.Setenv("GNS3FACTS_OUTPUT_FORMAT", "ini")
	t.Setenv("GNS3FACTS_LAYOUT", "legacy")
	t.Setenv("GNS3FACTS_INVENTORY_TEMPLATE", tmpl)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.TelemetryEnabled)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "ini", cfg.OutputFormat)
	assert.Equal(t, "legacy", cfg.Layout)
	assert.Equal(t, tmpl, cfg.InventoryTemplate)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogLevel:       "info",
			LogFormat:      "text",
			RequestTimeout: time.Second,
			OutputFormat:   "json",
			Layout:         "nested",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log level"},
		{name: "log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log format"},
		{name: "timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "invalid request timeout"},
		{name: "output format", mutate: func(c *Config) { c.OutputFormat = "toml" }, wantErr: "invalid output format"},
		{name: "layout", mutate: func(c *Config) { c.Layout = "flat" }, wantErr: "invalid layout"},
		{
			name:    "missing template",
			mutate:  func(c *Config) { c.InventoryTemplate = filepath.Join(t.TempDir(), "absent.tmpl") },
			wantErr: "file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
