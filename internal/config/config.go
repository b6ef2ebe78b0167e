// Package config handles ferry configuration parsing and location
// resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/adamancini/ferry/internal/watcher"
)

// Config is the resolved ferry configuration.
type Config struct {
	Watcher WatcherConfig `yaml:"watcher" toml:"watcher" json:"watcher"`
	Rules   []Rule        `yaml:"rules" toml:"rules" json:"rules"`
}

// WatcherConfig configures the polling watcher.
type WatcherConfig struct {
	WatchPath      string `yaml:"watch_path" toml:"watch_path" json:"watch_path"`
	Recursive      bool   `yaml:"recursive" toml:"recursive" json:"recursive"`
	IntervalMillis int64  `yaml:"interval_millis" toml:"interval_millis" json:"interval_millis"`
	MaxDepth       *int   `yaml:"max_depth,omitempty" toml:"max_depth,omitempty" json:"max_depth,omitempty"`
}

// Rule associates glob patterns with a destination directory. Order
// matters: rules fire in the order they are declared.
type Rule struct {
	Patterns    []string `yaml:"patterns" toml:"patterns" json:"patterns"`
	Destination string   `yaml:"destination" toml:"destination" json:"destination"`
}

// Default returns the configuration used when no file overrides it:
// watch ~/Downloads recursively, polling once a second.
func Default() *Config {
	return &Config{
		Watcher: WatcherConfig{
			WatchPath:      downloadsPath(),
			Recursive:      true,
			IntervalMillis: 1000,
		},
	}
}

func downloadsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// Interval returns the poll interval as a duration.
func (w WatcherConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMillis) * time.Millisecond
}

// Depth returns the recursion limit in watcher terms: the configured
// depth, or unlimited when max_depth is unset.
func (w WatcherConfig) Depth() int {
	if w.MaxDepth == nil {
		return watcher.UnlimitedDepth
	}
	return *w.MaxDepth
}

// Find locates the configuration file. An explicit path wins, then the
// FERRY_CONFIG environment variable, then ferry.{yaml,yml,toml,json}
// under the user config directory, then dotted variants in the home
// directory.
func Find(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv("FERRY_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	names := []string{"ferry.yaml", "ferry.yml", "ferry.toml", "ferry.json"}

	configDir := filepath.Join(xdg.ConfigHome, "ferry")
	for _, name := range names {
		path := filepath.Join(configDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	for _, name := range names {
		path := filepath.Join(home, "."+name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no config file found in standard locations")
}

// Load reads, parses and validates the configuration at path. Values
// absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	cfg, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
