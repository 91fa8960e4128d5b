package client

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the default gateway URL.
const DefaultEndpoint = "http://localhost:8787"

// Config holds client connection settings.
type Config struct {
	Endpoint string `yaml:"endpoint"`
}

// WithDefaults returns a copy of the config with empty fields filled in.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Endpoint == "" {
		out.Endpoint = DefaultEndpoint
	}
	return &out
}

// DefaultConfigPath returns the default config file location
// (~/.picstash/config.yaml), or "" when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".picstash", "config.yaml")
}

// LoadConfigFromFile reads a YAML config file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// SaveConfigFile writes a YAML config file, creating parent directories.
func SaveConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ConfigFromEnv builds a config from PICSTASH_SERVER.
func ConfigFromEnv() *Config {
	return &Config{Endpoint: os.Getenv("PICSTASH_SERVER")}
}

// MergeConfig merges configs in order; later non-empty values win.
func MergeConfig(configs ...*Config) *Config {
	merged := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Endpoint != "" {
			merged.Endpoint = cfg.Endpoint
		}
	}
	return merged
}
