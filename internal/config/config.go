package config

import "time"

// Config is the root configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Loop   LoopConfig   `yaml:"loop"`
	Sink   SinkConfig   `yaml:"sink"`
	Log    LogConfig    `yaml:"log"`
	Status StatusConfig `yaml:"status"`
}

// SourceConfig holds market data provider settings.
type SourceConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"` // optional CoinGecko demo key
	Currency  string        `yaml:"currency"`
	PageSize  int           `yaml:"page_size"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"` // default: coinsheet/<version>
}

// LoopConfig holds scheduling and retry settings.
type LoopConfig struct {
	Interval     time.Duration `yaml:"interval"`
	Jitter       time.Duration `yaml:"jitter"` // negative disables jitter
	BackoffBase  time.Duration `yaml:"backoff_base"`
	BackoffCap   time.Duration `yaml:"backoff_cap"`
	MaxRetries   int           `yaml:"max_retries"`
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// Sink drivers.
const (
	DriverSheets   = "sheets"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// SinkConfig selects and addresses the one tabular sink.
type SinkConfig struct {
	Driver       string        `yaml:"driver"`
	URL          string        `yaml:"url"`   // spreadsheet URL or id
	Sheet        string        `yaml:"sheet"` // tab name; empty means the first tab
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Postgres     DBConfig      `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	URL      string `yaml:"url"` // full connection string; wins over the fields below
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
	File   string `yaml:"file"`   // append-only log file; empty logs to stdout only
}

// StatusConfig controls the optional status HTTP server.
type StatusConfig struct {
	Port int `yaml:"port"` // 0 disables
}
