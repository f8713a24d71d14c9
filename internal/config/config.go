// Package config provides configuration management for physmap.
//
// Config file locations (priority order):
//  1. $PHYSMAP_CONFIG
//  2. physmap.yaml beside the database given with --db
//  3. ./physmap.yaml
//  4. $XDG_CONFIG_HOME/physmap/config.yaml, or ~/.config/physmap/config.yaml
//  5. /etc/physmap/config.yaml
//
// Command-line flags override whatever the file says.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr       = ":3000"
	DefaultDBPath     = "./physmap.db"
	DefaultStorageKey = "physics-mapper-flow"
	DefaultLogLevel   = "info"
)

// Load finds and loads the config file, or returns defaults if none found.
// dbPath is the database chosen on the command line, if any.
func Load(dbPath string) (*Config, string, error) {
	path := FindConfigPath(dbPath)

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Database: %s, Key: %s\n", c.Server.Addr, c.Database.Path, c.Storage.Key)
	summary += fmt.Sprintf("Log level: %s", c.Log.Level)
	if c.Log.Development {
		summary += " (development)"
	}
	if c.Watch.ImportPath != "" {
		summary += fmt.Sprintf("\nWatching: %s", c.Watch.ImportPath)
	}
	return summary
}
