package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Source.PageSize < 1 || c.Source.PageSize > 250 {
		return fmt.Errorf("source.page_size must be between 1 and 250, got %d", c.Source.PageSize)
	}
	if c.Source.Currency == "" {
		return errors.New("source.currency is required")
	}
	if c.Source.Timeout <= 0 {
		return errors.New("source.timeout must be > 0")
	}

	if c.Loop.Interval <= 0 {
		return errors.New("loop.interval must be > 0")
	}
	if c.Loop.Jitter >= c.Loop.Interval {
		return fmt.Errorf("loop.jitter (%s) must be less than loop.interval (%s)", c.Loop.Jitter, c.Loop.Interval)
	}
	if c.Loop.BackoffBase <= 0 {
		return errors.New("loop.backoff_base must be > 0")
	}
	if c.Loop.BackoffCap < c.Loop.BackoffBase {
		return fmt.Errorf("loop.backoff_cap (%s) cannot be less than loop.backoff_base (%s)", c.Loop.BackoffCap, c.Loop.BackoffBase)
	}
	if c.Loop.MaxRetries < 1 {
		return errors.New("loop.max_retries must be >= 1")
	}

	switch c.Sink.Driver {
	case DriverSheets:
		if c.Sink.URL == "" {
			return errors.New("sink.url is required for the sheets driver")
		}
	case DriverPostgres:
		if err := c.Sink.Postgres.validate("sink.postgres"); err != nil {
			return err
		}
	case DriverMemory:
	default:
		return fmt.Errorf("sink.driver must be one of %s, %s, %s; got %q", DriverSheets, DriverPostgres, DriverMemory, c.Sink.Driver)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json; got %q", c.Log.Format)
	}

	if c.Status.Port < 0 || c.Status.Port > 65535 {
		return fmt.Errorf("status.port must be between 0 and 65535, got %d", c.Status.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.URL != "" {
		return nil
	}
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
