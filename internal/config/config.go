// Package config loads the server configuration from YAML with defaults and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv and ResolvePath.
const (
	EnvLogLevel   = "IMAGE_MCP_LOG_LEVEL"
	EnvConfigPath = "IMAGE_MCP_CONFIG"
)

// Config is the full server configuration.
type Config struct {
	Processing Processing `yaml:"processing"`
	Edge       Edge       `yaml:"edge"`
	Morphology Morphology `yaml:"morphology"`
	Lines      Lines      `yaml:"lines"`
	Log        Log        `yaml:"log"`
}

// Processing controls engine resources.
type Processing struct {
	// Workers bounds the goroutines used by the Deriche filters and line voting.
	Workers int `yaml:"workers"`

	// MaxAccumulatorCells refuses line voting on sources whose vote space is larger.
	MaxAccumulatorCells int64 `yaml:"max_accumulator_cells"`
}

// Edge holds the defaults for image_edge_detect arguments the client omits.
type Edge struct {
	Kind         string  `yaml:"kind"`
	ThresholdMin int     `yaml:"threshold_min"`
	ThresholdMax int     `yaml:"threshold_max"`
	Monochrome   bool    `yaml:"monochrome"`
	Alpha        float64 `yaml:"alpha"`
}

// Morphology holds the defaults for image_morphology arguments.
type Morphology struct {
	Dimension    int    `yaml:"dimension"`
	Neighborhood string `yaml:"neighborhood"`
}

// Lines holds the defaults for image_line_votes arguments.
type Lines struct {
	// MaxDimension downscales sources larger than this before voting. 0 disables.
	MaxDimension int    `yaml:"max_dimension"`
	Colormap     string `yaml:"colormap"`
}

// Log configures the logger.
type Log struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.MaxAccumulatorCells = 1 << 22

	cfg.Edge.Kind = "sobel"
	cfg.Edge.ThresholdMin = 0
	cfg.Edge.ThresholdMax = 255
	cfg.Edge.Alpha = 1.0

	cfg.Morphology.Dimension = 1
	cfg.Morphology.Neighborhood = "connectivity8"

	cfg.Lines.MaxDimension = 64
	cfg.Lines.Colormap = "gray"

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
}

// LoadConfig reads path over the defaults. A missing file, or an empty path,
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// CreateDefaultConfigFile writes the default configuration to path.
func CreateDefaultConfigFile(path string) error {
	return SaveConfig(DefaultConfig(), path)
}

// ResolvePath picks the config file: the flag value if set, otherwise
// IMAGE_MCP_CONFIG, otherwise none.
func ResolvePath(flagValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	return getenv(EnvConfigPath)
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if lvl := strings.TrimSpace(getenv(EnvLogLevel)); lvl != "" {
		c.Log.Level = lvl
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var err error
	if c.Processing.Workers < 1 {
		err = multierr.Append(err, fmt.Errorf("processing.workers must be at least 1, got %d", c.Processing.Workers))
	}
	if c.Processing.MaxAccumulatorCells < 1 {
		err = multierr.Append(err, fmt.Errorf("processing.max_accumulator_cells must be positive, got %d", c.Processing.MaxAccumulatorCells))
	}
	if c.Lines.MaxDimension < 0 {
		err = multierr.Append(err, fmt.Errorf("lines.max_dimension must not be negative, got %d", c.Lines.MaxDimension))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return err
}
