// Package config loads hdrtidy settings from a YAML file with HDRTIDY_*
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"hdrtidy/internal/cmakelists"
	"hdrtidy/internal/libtree"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration.
type Config struct {
	Root          string         `yaml:"root"`
	Families      []FamilyConfig `yaml:"families"`
	Clean         string         `yaml:"clean"`
	DryRun        bool           `yaml:"dryRun"`
	Jobs          int            `yaml:"jobs"`
	Report        string         `yaml:"report"`
	CMakeFunction string         `yaml:"cmakeFunction"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// FamilyConfig names a library family and its directories, relative to Root
// unless absolute.
type FamilyConfig struct {
	Name string `yaml:"name"`
	Libs string `yaml:"libs"`
	Inc  string `yaml:"inc"`
}

// LoggingConfig controls log level and output format (console or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the layout of a tree with detection and xstream families.
func Default() *Config {
	return &Config{
		Root: ".",
		Families: []FamilyConfig{
			{Name: "detection", Libs: "detection/libs", Inc: "detection/inc"},
			{Name: "xstream", Libs: "xstream/libs", Inc: "xstream/inc"},
		},
		Clean:         "detection",
		Jobs:          4,
		CMakeFunction: cmakelists.DefaultFunction,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if len(c.Families) == 0 {
		return fmt.Errorf("%w: no families configured", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Families))
	for _, f := range c.Families {
		if f.Name == "" || f.Libs == "" {
			return fmt.Errorf("%w: family needs a name and a libs directory", ErrInvalid)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate family %q", ErrInvalid, f.Name)
		}
		seen[f.Name] = true
	}
	if !seen[c.Clean] {
		return fmt.Errorf("%w: family to clean %q is not configured", ErrInvalid, c.Clean)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalid, c.Jobs)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// Layouts converts the family settings for libtree.Load.
func (c *Config) Layouts() []libtree.Layout {
	out := make([]libtree.Layout, 0, len(c.Families))
	for _, f := range c.Families {
		out = append(out, libtree.Layout{Name: f.Name, Libs: f.Libs, Inc: f.Inc})
	}
	return out
}

// applyEnvOverrides reads HDRTIDY_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HDRTIDY_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("HDRTIDY_CLEAN"); v != "" {
		cfg.Clean = v
	}
	if v := os.Getenv("HDRTIDY_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DryRun = b
		}
	}
	if v := os.Getenv("HDRTIDY_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
	if v := os.Getenv("HDRTIDY_REPORT"); v != "" {
		cfg.Report = v
	}
	if v := os.Getenv("HDRTIDY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HDRTIDY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
