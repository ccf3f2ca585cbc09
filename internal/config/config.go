// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	Filter   FilterConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatasetConfig holds settings for the delivery dataset file.
type DatasetConfig struct {
	// Path is the .csv or .xlsx file to load (default: data/train.csv)
	Path string `env:"DATASET_PATH" default:"data/train.csv"`

	// Sheet is the worksheet to read from an .xlsx file (default: first sheet)
	Sheet string `env:"DATASET_SHEET"`

	// Watch reloads the dataset when the file changes (default: false)
	Watch bool `env:"DATASET_WATCH" default:"false"`

	// WatchDebounce is the quiet period after a change before reloading (default: 2s)
	WatchDebounce time.Duration `env:"DATASET_WATCH_DEBOUNCE" default:"2s"`

	// LoadTimeout is the maximum duration of a single load (default: 2m)
	LoadTimeout time.Duration `env:"DATASET_LOAD_TIMEOUT" default:"2m"`
}

// DatabaseConfig holds settings for reading the dataset from PostgreSQL.
// When URL is empty the file source is used.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATASET_DATABASE_URL and DATABASE_URL env vars
	URL string `env:"DATASET_DATABASE_URL" envAlt:"DATABASE_URL"`

	// Table is the table holding raw delivery rows (default: deliveries)
	Table string `env:"DATASET_TABLE" default:"deliveries"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// FilterConfig holds the default dashboard filter.
type FilterConfig struct {
	// Cutoff keeps orders placed before this YYYY-MM-DD date (default: 2022-04-06)
	Cutoff string `env:"FILTER_CUTOFF" default:"2022-04-06"`

	// Traffic is a comma-separated list of traffic densities to keep
	Traffic []string `env:"FILTER_TRAFFIC" default:"Low,Medium,High,Jam"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ReloadLimit is requests per minute for the reload endpoint (default: 5)
	ReloadLimit int `env:"RATE_LIMIT_RELOAD" default:"5"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the reload endpoint with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// CutoffLayout is the date layout of FILTER_CUTOFF and the cutoff query parameter.
const CutoffLayout = "2006-01-02"

// CutoffDate parses the configured cutoff. An empty value disables the cutoff.
func (c *FilterConfig) CutoffDate() (time.Time, error) {
	if c.Cutoff == "" {
		return time.Time{}, nil
	}
	return time.Parse(CutoffLayout, c.Cutoff)
}

// UsesDatabase reports whether the dataset is read from PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
