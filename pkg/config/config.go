// Package config loads settings for the church command.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vinodhalaharvi/church/pkg/generator"
	"github.com/vinodhalaharvi/church/pkg/transformer"
)

// DefaultPath is read when no --config flag is given. A missing file is not
// an error.
const DefaultPath = "church.yaml"

// ErrInvalidConfig reports a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all church tool configuration.
type Config struct {
	// Output format: decimal, tally or lambda.
	Format string `yaml:"format"`

	// Evaluation limits
	Limits LimitsConfig `yaml:"limits"`

	// Parallel evaluations in a batch.
	Workers int `yaml:"workers"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LimitsConfig bounds what an expression may denote.
type LimitsConfig struct {
	MaxLiteral uint64 `yaml:"max_literal"`
	MaxValue   uint64 `yaml:"max_value"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	opts := transformer.DefaultOptions()
	return &Config{
		Format: string(generator.FormatDecimal),
		Limits: LimitsConfig{
			MaxLiteral: opts.MaxLiteral,
			MaxValue:   opts.MaxValue,
		},
		Workers: runtime.GOMAXPROCS(0),
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
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

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CHURCH_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("CHURCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CHURCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CHURCH_WORKERS=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Workers = n
	}
	if v := os.Getenv("CHURCH_MAX_LITERAL"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CHURCH_MAX_LITERAL=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Limits.MaxLiteral = n
	}
	if v := os.Getenv("CHURCH_MAX_VALUE"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CHURCH_MAX_VALUE=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Limits.MaxValue = n
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := generator.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// TransformerOptions converts the limits for the transformer.
func (c *Config) TransformerOptions() transformer.Options {
	return transformer.Options{
		MaxLiteral: c.Limits.MaxLiteral,
		MaxValue:   c.Limits.MaxValue,
	}
}
