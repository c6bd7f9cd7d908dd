package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultCurrency     = "usd"
	DefaultPageSize     = 50
	DefaultTimeout      = 10 * time.Second
	DefaultInterval     = 300 * time.Second
	DefaultJitter       = 30 * time.Second
	DefaultBackoffBase  = 15 * time.Second
	DefaultBackoffCap   = 600 * time.Second
	DefaultMaxRetries   = 5
	DefaultCheckTimeout = 30 * time.Second
	DefaultSinkDriver   = DriverSheets
	DefaultSheetURL     = "https://docs.google.com/spreadsheets/d/100qOfV1LbRyW8pruJrRUJ4HIFUn3MY_Qgz8I_YburTc/edit?gid=0#gid=0"
	DefaultWriteTimeout = 30 * time.Second
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultLogFile      = "logs/coinsheet.log"
)

func (c *Config) applyDefaults() {
	// Source defaults
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = DefaultBaseURL
	}
	if c.Source.Currency == "" {
		c.Source.Currency = DefaultCurrency
	}
	if c.Source.PageSize == 0 {
		c.Source.PageSize = DefaultPageSize
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = DefaultTimeout
	}

	// Loop defaults
	if c.Loop.Interval == 0 {
		c.Loop.Interval = DefaultInterval
	}
	if c.Loop.Jitter == 0 {
		c.Loop.Jitter = DefaultJitter
	}
	if c.Loop.BackoffBase == 0 {
		c.Loop.BackoffBase = DefaultBackoffBase
	}
	if c.Loop.BackoffCap == 0 {
		c.Loop.BackoffCap = DefaultBackoffCap
	}
	if c.Loop.MaxRetries == 0 {
		c.Loop.MaxRetries = DefaultMaxRetries
	}
	if c.Loop.CheckTimeout == 0 {
		c.Loop.CheckTimeout = DefaultCheckTimeout
	}

	// Sink defaults
	if c.Sink.Driver == "" {
		c.Sink.Driver = DefaultSinkDriver
	}
	if c.Sink.URL == "" {
		c.Sink.URL = DefaultSheetURL
	}
	if c.Sink.WriteTimeout == 0 {
		c.Sink.WriteTimeout = DefaultWriteTimeout
	}
	applyDBDefaults(&c.Sink.Postgres)

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
