// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Configuration of the orcaparse command line tool, read from TOML or YAML.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete tool configuration.
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Parse  ParseConfig  `toml:"parse" yaml:"parse"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Check  CheckConfig  `toml:"check" yaml:"check"`
}

// OutputConfig selects how trees and diagnostics are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// ParseConfig holds parser options.
type ParseConfig struct {
	KeepComments bool `toml:"keep_comments" yaml:"keep_comments"`
	MaxErrors    int  `toml:"max_errors" yaml:"max_errors"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// CheckConfig holds settings of the check command.
type CheckConfig struct {
	Workers int `toml:"workers" yaml:"workers"`
}

// DefaultFiles are searched, in order, in the working directory.
var DefaultFiles = []string{".orcaparse.toml", ".orcaparse.yaml", ".orcaparse.yml"}

var (
	formats    = []string{"sexp", "yaml", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file. The format follows the extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover loads the first of DefaultFiles found in dir, or the defaults
// when there is none.
func Discover(dir string) (*Config, error) {
	for _, name := range DefaultFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "sexp"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Check.Workers == 0 {
		c.Check.Workers = runtime.NumCPU()
	}
}

// Validate checks enumerated fields and numeric ranges.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: %q is not one of %s", c.Output.Format, strings.Join(formats, ", ")))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: %q is not one of %s", c.Log.Format, strings.Join(logFormats, ", ")))
	}
	if c.Parse.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("parse.max_errors: must not be negative, got %d", c.Parse.MaxErrors))
	}
	if c.Check.Workers < 0 {
		errs = append(errs, fmt.Errorf("check.workers: must not be negative, got %d", c.Check.Workers))
	}
	return errors.Join(errs...)
}
