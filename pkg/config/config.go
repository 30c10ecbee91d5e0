// Package config loads the slurmgen application configuration. All
// defaults are explicit here; there are no hidden module-level fallbacks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"slurmgen/pkg/errors"
	"slurmgen/pkg/logger"
)

// Config holds the complete application configuration as a single flat
// structure.
type Config struct {
	// DefaultPartition is the partition used when neither the CLI nor the
	// group pins one; empty falls back to the environment's first partition
	DefaultPartition string `yaml:"default_partition"`

	// Force bypasses GPU-on-CPU-partition validation for every render
	Force bool `yaml:"force"`

	// Account overrides account resolution; empty defers to the process
	// environment and the compute environment's default
	Account string `yaml:"account"`

	// Environment names the compute environment to use instead of
	// hostname detection; empty means detect
	Environment string `yaml:"environment"`

	// TopologyFile points at a YAML partition table that overrides the
	// selected environment's built-in topology; empty keeps the built-in
	TopologyFile string `yaml:"topology_file"`

	// WorkDir is the directory composed scripts change into; empty means
	// no working-directory change
	WorkDir string `yaml:"work_dir"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR
	LogLevel string `yaml:"log_level"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		DefaultPartition: "",
		Force:            false,
		LogLevel:         "INFO",
	}
}

// searchPaths are the conventional config locations, checked in order when
// no explicit path is given.
func searchPaths() []string {
	paths := []string{"slurmgen.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "slurmgen", "config.yml"))
	}
	paths = append(paths, "/etc/slurmgen/config.yml")
	return paths
}

// Load reads the configuration from path, or from the first conventional
// location that exists when path is empty. A completely absent config file
// is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range searchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError("path", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfigError("path", fmt.Errorf("parsing %s: %w", path, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that have a constrained domain.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return errors.WrapConfigError("log_level", err)
	}
	return nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() logger.LogLevel {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}
