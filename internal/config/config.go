// Package config loads tool configuration from an optional config.yaml in
// the data directory, with environment variables taking precedence. A .env
// file in the working directory is honored for development setups.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spyglass-osint/spyglass/internal/paths"
)

// Config holds everything the CLI needs before a workspace is opened.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	LogLevel  string `yaml:"log_level"`
	PrettyLog bool   `yaml:"pretty_log"`
}

// Load resolves the configuration: defaults, then config.yaml, then env.
func Load() (*Config, error) {
	// Missing .env is fine, it only exists in dev setups.
	_ = godotenv.Load()

	dataDir, err := paths.DataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:   dataDir,
		LogLevel:  "info",
		PrettyLog: true,
	}

	if err := cfg.loadFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return nil, err
	}

	if v := os.Getenv("SPYGLASS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SPYGLASS_PRETTY_LOG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SPYGLASS_PRETTY_LOG: %w", err)
		}
		cfg.PrettyLog = b
	}
	// SPYGLASS_DATA_DIR is already applied by paths.DataDir.

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config file must not unset data_dir")
	}
	return nil
}
