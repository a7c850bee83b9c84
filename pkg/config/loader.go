package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "SMARTNOTES_"

// Loader provides methods for loading configuration from various sources.
type Loader interface {
	// Load loads configuration with the following precedence:
	// 1. Environment variables (and the .env file)
	// 2. Configuration file
	// 3. Default values
	//
	// Returns the merged configuration or an error if validation fails.
	Load() (*Config, error)

	// LoadFromFile reads a single YAML file without merging or validation.
	LoadFromFile(path string) (*Config, error)

	// Path returns the config file used by the last Load, or "" if none.
	Path() string
}

type loader struct {
	configPath string
	envFile    string
	usedPath   string
}

// envOverrides lists the variables applied on top of the file configuration.
type envOverrides struct {
	APIURL         string         `env:"API_URL"`
	APITimeout     *time.Duration `env:"API_TIMEOUT"`
	StorageBackend string         `env:"STORAGE_BACKEND"`
	DBPath         string         `env:"DB"`
	RedisAddr      string         `env:"REDIS_ADDR"`
	RedisPassword  string         `env:"REDIS_PASSWORD"`
	LogLevel       string         `env:"LOG_LEVEL"`
	Format         string         `env:"FORMAT"`
}

// NewLoader creates a new configuration loader.
//
// If configPath is empty, searches for a config file in:
// 1. ./smartnotes.yaml (current directory)
// 2. ~/.config/smartnotes/config.yaml.
func NewLoader(configPath string) Loader {
	return &loader{
		configPath: configPath,
		envFile:    ".env",
	}
}

// Load implements Loader.Load.
func (l *loader) Load() (*Config, error) {
	cfg := Default()

	configPath := l.configPath
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	if configPath != "" {
		fileCfg, err := l.LoadFromFile(configPath)
		if err != nil {
			// An explicitly requested file must load.
			if l.configPath != "" {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		} else {
			cfg = mergeConfigs(cfg, fileCfg)
			l.usedPath = configPath
		}
	}

	cfg, err := l.applyEnv(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile implements Loader.LoadFromFile.
func (l *loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &cfg, nil
}

// Path implements Loader.Path.
func (l *loader) Path() string {
	return l.usedPath
}

func (l *loader) findConfigFile() string {
	candidates := []string{
		"./smartnotes.yaml",
		DefaultConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// mergeConfigs overlays the non-zero values of override onto base.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout != 0 {
		result.API.Timeout = override.API.Timeout
	}

	if override.Storage.Backend != "" {
		result.Storage.Backend = override.Storage.Backend
	}
	if override.Storage.DBPath != "" {
		result.Storage.DBPath = override.Storage.DBPath
	}
	if override.Storage.TokenKey != "" {
		result.Storage.TokenKey = override.Storage.TokenKey
	}
	if override.Storage.Redis.Addr != "" {
		result.Storage.Redis.Addr = override.Storage.Redis.Addr
	}
	if override.Storage.Redis.Password != "" {
		result.Storage.Redis.Password = override.Storage.Redis.Password
	}
	if override.Storage.Redis.DB != 0 {
		result.Storage.Redis.DB = override.Storage.Redis.DB
	}

	if override.Display.Format != "" {
		result.Display.Format = override.Display.Format
	}
	result.Display.Compact = override.Display.Compact

	if override.Shell.Prompt != "" {
		result.Shell.Prompt = override.Shell.Prompt
	}
	result.Shell.DisableWatch = override.Shell.DisableWatch

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		result.Logging.Output = override.Logging.Output
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	return &result
}

// applyEnv loads the optional .env file and applies SMARTNOTES_* overrides.
func (l *loader) applyEnv(cfg *Config) (*Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", l.envFile, err)
		}
	}

	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}

	result := *cfg

	if o.APIURL != "" {
		result.API.BaseURL = o.APIURL
	}
	if o.APITimeout != nil {
		result.API.Timeout = *o.APITimeout
	}
	if o.StorageBackend != "" {
		result.Storage.Backend = strings.ToLower(o.StorageBackend)
	}
	if o.DBPath != "" {
		result.Storage.DBPath = o.DBPath
	}
	if o.RedisAddr != "" {
		result.Storage.Redis.Addr = o.RedisAddr
	}
	if o.RedisPassword != "" {
		result.Storage.Redis.Password = o.RedisPassword
	}
	if o.LogLevel != "" {
		result.Logging.Level = strings.ToLower(o.LogLevel)
	}
	if o.Format != "" {
		result.Display.Format = strings.ToLower(o.Format)
	}

	return &result, nil
}

// Load is a convenience function equivalent to NewLoader("").Load().
func Load() (*Config, error) {
	return NewLoader("").Load()
}

// LoadFromFile loads, merges and validates the configuration at path.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Save writes the configuration to a YAML file with 0600 permissions,
// creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
