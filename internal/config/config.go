// Package config provides configuration loading and structs for the hyperbolic CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/hyperbolic/pkg/poincare"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Geometry GeometryConfig `yaml:"geometry"`
	Frechet  FrechetConfig  `yaml:"frechet"`
	Batch    BatchConfig    `yaml:"batch"`
	Output   OutputConfig   `yaml:"output"`
	// DatasetDir is where relative dataset paths are looked up when they do
	// not exist relative to the working directory.
	DatasetDir string `yaml:"dataset_dir"`
}

// GeometryConfig holds the ball parameters.
type GeometryConfig struct {
	Curvature  float64 `yaml:"curvature"`
	ClipRadius float64 `yaml:"clip_radius"`
}

// FrechetConfig holds Fréchet mean solver settings.
type FrechetConfig struct {
	MaxIter int `yaml:"max_iter"`
	// Tolerance is a pointer so that an explicit 0 (stop only at the exact
	// threshold) is distinguishable from unset.
	Tolerance *float64 `yaml:"tolerance"`
}

// ToleranceOrDefault returns the configured tolerance, or
// poincare.DefaultTolerance when unset.
func (f *FrechetConfig) ToleranceOrDefault() float64 {
	if f.Tolerance != nil {
		return *f.Tolerance
	}
	return poincare.DefaultTolerance
}

// BatchConfig holds settings for concurrent centroid computation.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// OutputConfig holds result formatting settings.
type OutputConfig struct {
	Format    string `yaml:"format"`
	Precision int    `yaml:"precision"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed, or if values are invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.DatasetDir != "" {
		cfg.DatasetDir = expandPath(cfg.DatasetDir, filepath.Dir(path))
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects values no operation could run with.
func (c *Config) Validate() error {
	if !(c.Geometry.Curvature > 0) {
		return fmt.Errorf("geometry.curvature must be > 0, got %g", c.Geometry.Curvature)
	}
	if !(c.Geometry.ClipRadius > 0 && c.Geometry.ClipRadius < 1) {
		return fmt.Errorf("geometry.clip_radius must be in (0, 1), got %g", c.Geometry.ClipRadius)
	}
	if tol := c.Frechet.ToleranceOrDefault(); !(tol >= 0) {
		return fmt.Errorf("frechet.tolerance must be >= 0, got %g", tol)
	}
	switch c.Output.Format {
	case "text", "compact", "json":
	default:
		return fmt.Errorf("output.format must be text, compact or json, got %q", c.Output.Format)
	}
	return nil
}

// ResolveDataset returns path unchanged when it exists or is absolute;
// otherwise, when DatasetDir is set, the path joined onto DatasetDir.
func (c *Config) ResolveDataset(path string) string {
	if filepath.IsAbs(path) || c.DatasetDir == "" {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(c.DatasetDir, path)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
