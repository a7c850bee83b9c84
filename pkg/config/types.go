// Package config provides configuration management for the smartnotes client.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority, applied by the CLI)
// 2. Environment variables (optionally seeded from a .env file)
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("API: %s\n", cfg.API.BaseURL)
package config

import (
	"net/url"
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - API.BaseURL is an absolute http(s) URL
// - API.Timeout >= 0 (0 disables the timeout)
// - Storage.Backend is bolt or redis, with the matching location set
// - Display.Format is table, json or simple.
type Config struct {
	// Remote API settings
	API APIConfig `yaml:"api"`

	// Token storage settings
	Storage StorageConfig `yaml:"storage"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Interactive shell settings
	Shell ShellConfig `yaml:"shell"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig contains Remote API settings.
type APIConfig struct {
	// Origin of the Remote API, including any path prefix
	BaseURL string `yaml:"base_url"`

	// Per-request timeout; zero means requests never time out
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig contains bearer token storage settings.
type StorageConfig struct {
	// Backend is bolt or redis
	Backend string `yaml:"backend"`

	// Path to BoltDB database file
	DBPath string `yaml:"db_path"`

	// Key holding the bearer token
	TokenKey string `yaml:"token_key"`

	// Redis connection, used by the redis backend
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Output format (table, json, simple)
	Format string `yaml:"format"`

	// Compact output
	Compact bool `yaml:"compact"`
}

// ShellConfig contains interactive shell settings.
type ShellConfig struct {
	// Stop reloading display settings when the config file changes
	DisableWatch bool `yaml:"disable_watch"`

	// Prompt string
	Prompt string `yaml:"prompt"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if c.API.Timeout < 0 {
		return ErrInvalidTimeout
	}

	switch c.Storage.Backend {
	case BackendBolt:
		if c.Storage.DBPath == "" {
			return ErrMissingDBPath
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return ErrInvalidBackend
	}
	if c.Storage.TokenKey == "" {
		return ErrMissingTokenKey
	}

	validFormats := map[string]bool{
		"table":  true,
		"json":   true,
		"simple": true,
	}
	if !validFormats[c.Display.Format] {
		return ErrInvalidDisplayFormat
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Storage: StorageConfig{
			Backend:  BackendBolt,
			DBPath:   defaultDBPath(),
			TokenKey: DefaultTokenKey,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Display: DisplayConfig{
			Format: "table",
		},
		Shell: ShellConfig{
			Prompt: "> ",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
			Format: "text",
		},
	}
}
