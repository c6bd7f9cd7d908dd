package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigError wraps any failure to produce a usable configuration.
// It is always fatal at startup.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads a YAML config file and expands environment variables.
// An empty path yields an empty Config.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("read config file: %w", err)}
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("parse config yaml: %w", err)}
	}

	return &cfg, nil
}

// LoadWithDefaults loads config, applies environment overrides and then defaults.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies overrides and defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("validate config: %w", err)}
	}
	return cfg, nil
}

// applyEnv overrides selected fields from the process environment.
func (c *Config) applyEnv() error {
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.Source.APIKey = v
	}
	if v := os.Getenv("SINK_DRIVER"); v != "" {
		c.Sink.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SHEET_URL"); v != "" {
		c.Sink.URL = v
	}
	if v := os.Getenv("SHEET_NAME"); v != "" {
		c.Sink.Sheet = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Sink.Postgres.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_RETRIES: %w", err)
		}
		c.Loop.MaxRetries = n
	}
	return nil
}
