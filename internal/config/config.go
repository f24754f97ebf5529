package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the flat crewdeck configuration
type Config struct {
	Version      string `yaml:"version"`
	DataDir      string `yaml:"data_dir,omitempty"`      // defaults to ~/.crewdeck
	DatabasePath string `yaml:"database_path,omitempty"` // overrides <data_dir>/crewdeck.db
}

// LoadConfig reads config.yaml from the given data directory.
// Returns a zero-value config (not an error) if the file does not exist;
// a missing config just means defaults.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.yaml to the given data directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultDataDir returns the default crewdeck data directory.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".crewdeck"), nil
}

// DatabasePath resolves the database file path for a config loaded from dir.
func (c *Config) ResolveDatabasePath(dir string) string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "crewdeck.db")
	}
	return filepath.Join(dir, "crewdeck.db")
}
