package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBaseURL is the Remote API origin used when nothing else is configured.
	DefaultBaseURL = "http://localhost:3001/api"

	// DefaultTokenKey is the storage key holding the bearer token.
	DefaultTokenKey = "token"

	// BackendBolt stores the token in a local BoltDB file.
	BackendBolt = "bolt"

	// BackendRedis stores the token in redis.
	BackendRedis = "redis"
)

// defaultDBPath returns ~/.config/smartnotes/token.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./token.db"
	}

	return filepath.Join(homeDir, ".config", "smartnotes", "token.db")
}

// DefaultConfigPath returns ~/.config/smartnotes/config.yaml.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./smartnotes.yaml"
	}

	return filepath.Join(homeDir, ".config", "smartnotes", "config.yaml")
}
