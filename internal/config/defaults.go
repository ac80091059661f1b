package config

import (
	"runtime"

	"github.com/hyperjump/hyperbolic/pkg/poincare"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Geometry.Curvature == 0 {
		cfg.Geometry.Curvature = poincare.DefaultCurvature
	}
	if cfg.Geometry.ClipRadius == 0 {
		cfg.Geometry.ClipRadius = poincare.DefaultClipRadius
	}
	if cfg.Frechet.MaxIter == 0 {
		cfg.Frechet.MaxIter = poincare.DefaultMaxIter
	}
	if cfg.Frechet.Tolerance == nil {
		tol := poincare.DefaultTolerance
		cfg.Frechet.Tolerance = &tol
	}
	if cfg.Batch.Concurrency <= 0 {
		cfg.Batch.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Precision == 0 {
		cfg.Output.Precision = 8
	}
}
