// Package config loads surgdb configuration from a YAML file, falling back
// to defaults and applying environment overrides last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
)

// Config holds all surgdb configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Staging  StagingConfig  `yaml:"staging"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StagingConfig controls classification defaults.
type StagingConfig struct {
	// DefaultEdition applies when a record does not carry its own edition
	// tag. 7 or 8.
	DefaultEdition int `yaml:"default_edition"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".surgdb", "audit.db"),
		},
		Staging: StagingConfig{
			DefaultEdition: int(staging.Edition8),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults apply. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment beat file values. Useful for audit
// sites that deploy one config file across machines. A malformed override
// is an error, never silently ignored: falling back to another edition
// would restage records under the wrong vocabulary.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SURGDB_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SURGDB_EDITION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SURGDB_EDITION %q is not a number", v)
		}
		c.Staging.DefaultEdition = n
	}
	if v := os.Getenv("SURGDB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate rejects configurations that would fail later in surprising ways.
func (c *Config) Validate() error {
	if !staging.Edition(c.Staging.DefaultEdition).Valid() {
		return fmt.Errorf("unsupported AJCC edition %d (want 7 or 8)", c.Staging.DefaultEdition)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

// DefaultEdition returns the configured edition as a staging.Edition.
func (c *Config) DefaultEdition() staging.Edition {
	return staging.Edition(c.Staging.DefaultEdition)
}
