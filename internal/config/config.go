// ABOUTME: healthmetrics configuration management.
// ABOUTME: Resolves the store path, log level, and input delimiter from file, env, and defaults.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/healthmetrics/internal/storage"
)

// EnvDBPath overrides the configured store path.
const EnvDBPath = "HEALTHMETRICS_DB"

// Config stores healthmetrics configuration.
type Config struct {
	// DBPath is the SQLite store file. Supports ~ expansion.
	// Defaults to health_metrics.db in the working directory.
	DBPath string `json:"db_path,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`

	// Delimiter separates fields in loaded files. Defaults to ",".
	Delimiter string `json:"delimiter,omitempty"`
}

// GetDBPath returns the store path: the HEALTHMETRICS_DB environment
// variable wins over the file setting, which wins over the default.
func (c *Config) GetDBPath() string {
	if env := os.Getenv(EnvDBPath); env != "" {
		return ExpandPath(env)
	}
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return storage.DefaultDBPath
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetDelimiter returns the configured field delimiter, defaulting to ",".
func (c *Config) GetDelimiter() string {
	if c.Delimiter == "" {
		return ","
	}
	return c.Delimiter
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens (creating if needed) the store at path, or at the
// configured path when path is empty.
func (c *Config) OpenStorage(path string) (*storage.Store, error) {
	if path == "" {
		path = c.GetDBPath()
	}
	s, err := storage.Open(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthmetrics", "config.json")
}

// Load reads config from disk. A missing file yields an empty config.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
