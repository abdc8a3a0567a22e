package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the data directory.
const FileName = "config.yaml"

// Default endpoints for the self-update flow.
const (
	DefaultVersionURL = "https://tm-cli.com/api/version"
	DefaultInstallURL = "https://tm-cli.com/install"
)

// Config holds user settings stored as config.yaml next to the data file.
type Config struct {
	// Color controls styled output: "auto" (default) or "never".
	Color string `yaml:"color,omitempty"`
	// VersionURL overrides the endpoint `tm update` checks for releases.
	VersionURL string `yaml:"version_url,omitempty"`
	// InstallURL overrides the installer script `tm update` pipes to bash.
	InstallURL string `yaml:"install_url,omitempty"`
}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ResolvedVersionURL returns the configured version endpoint or the default.
func (c *Config) ResolvedVersionURL() string {
	if c.VersionURL != "" {
		return c.VersionURL
	}
	return DefaultVersionURL
}

// ResolvedInstallURL returns the configured installer URL or the default.
func (c *Config) ResolvedInstallURL() string {
	if c.InstallURL != "" {
		return c.InstallURL
	}
	return DefaultInstallURL
}
