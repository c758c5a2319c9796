package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel          string
	LogFormat         string
	TelemetryEnabled  bool
	RequestTimeout    time.Duration
	OutputFormat      string
	Layout            string
	InventoryTemplate string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("telemetry_enabled", false)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("output_format", "json")
	v.SetDefault("layout", "nested")
	v.SetDefault("inventory_template", "")

	v.SetEnvPrefix("gns3facts")
	v.AutomaticEnv()

	cfg := &Config{
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		TelemetryEnabled:  v.GetBool("telemetry_enabled"),
		RequestTimeout:    v.GetDuration("request_timeout"),
		OutputFormat:      v.GetString("output_format"),
		Layout:            v.GetString("layout"),
		InventoryTemplate: v.GetString("inventory_template"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.LogFormat)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout: %s (must be positive)", c.RequestTimeout)
	}

	validOutputFormats := map[string]bool{"json": true, "yaml": true, "ini": true}
	if !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (valid: json, yaml, ini)", c.OutputFormat)
	}

	validLayouts := map[string]bool{"nested": true, "legacy": true}
	if !validLayouts[c.Layout] {
		return fmt.Errorf("invalid layout: %s (valid: nested, legacy)", c.Layout)
	}

	if c.InventoryTemplate != "" {
		if err := validateFileExists(c.InventoryTemplate); err != nil {
			return fmt.Errorf("inventory template: %w", err)
		}
	}

	return nil
}

func validateFileExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	} else if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	return nil
}
