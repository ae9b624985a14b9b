// Package config handles reading .bookchat/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/citomed/bookchat/backend"
)

// Config is the top-level structure for .bookchat/config.yaml. Flags and
// environment variables override values loaded from the file.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	Greeting       string `yaml:"greeting"`        // empty = controller default
	RequestTimeout int    `yaml:"request_timeout"` // seconds
	DebugLog       string `yaml:"debug_log"`       // path; empty disables logging
}

const (
	configDir  = ".bookchat"
	configFile = "config.yaml"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		BaseURL:        backend.DefaultBaseURL,
		RequestTimeout: 30,
	}
}

// Load reads .bookchat/config.yaml from the given directory. A missing file
// is not an error: the defaults are returned. File values are merged over
// the defaults, so a partial config file is fine.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	return cfg, nil
}
