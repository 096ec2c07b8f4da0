// Package config holds the agsess configuration surface. The entry point
// builds one Config value and threads it through every call; nothing here
// is ambient mutable state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator

// EnvDataDir overrides the default data root when set.
const EnvDataDir = "CLAUDE_CONFIG_DIR"

// Config is the top-level configuration structure for agsess.
type Config struct {
	// DataDir is the session data root. Empty means: use the
	// CLAUDE_CONFIG_DIR environment variable, falling back to ~/.claude.
	DataDir string `yaml:"data_dir,omitempty"`

	// DefaultLimit is the page size used when a command does not pass
	// an explicit --limit.
	DefaultLimit int `yaml:"default_limit,omitempty"`

	// ContextLines is the number of lines shown on each side of a
	// search match.
	ContextLines int `yaml:"context_lines,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultLimit: 20,
		ContextLines: 2,
	}
}

// Load reads ~/.config/agsess/config.yaml over the defaults. A missing
// file is not an error.
func Load() (Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "agsess", "config.yaml"))
	if err != nil {
		return cfg, nil
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.DataDir != "" {
		cfg.DataDir = fileCfg.DataDir
	}
	if fileCfg.DefaultLimit > 0 {
		cfg.DefaultLimit = fileCfg.DefaultLimit
	}
	if fileCfg.ContextLines > 0 {
		cfg.ContextLines = fileCfg.ContextLines
	}
	return cfg, nil
}

// ResolveDataDir picks the data root: explicit flag, then config file,
// then environment, then the platform default ~/.claude.
func (c Config) ResolveDataDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".claude"), nil
}
