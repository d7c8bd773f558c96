// Package config loads runtime configuration for an Evaluator session: the
// iteration cap, lazy field-search defaults, and worker-pool size. It is
// grounded on the teacher's reliance on goccy/go-yaml for structured data
// (promoted here from an indirect dependency to a direct config-file
// loader, per SPEC_FULL.md's Ambient Stack section), generalized from the
// teacher's CLI flags alone to an optional YAML file plus an environment
// variable override.
package config

import (
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Config holds every tunable the evaluator and its CLI front-end need
// before a program starts running.
type Config struct {
	MaxIterations int  `yaml:"max_iterations"`
	LazyStrict    bool `yaml:"lazy_strict"`
	LazyBFS       bool `yaml:"lazy_breadth_first"`
	LazyMaxDepth  int  `yaml:"lazy_max_depth"`
	Workers       int  `yaml:"workers"`
}

// MaxIterationsEnvVar overrides Config.MaxIterations when set, per spec.md
// §6's configuration surface.
const MaxIterationsEnvVar = "OVSM_MAX_ITERATIONS"

// Default returns the configuration an Evaluator uses when no file or
// environment override is present.
func Default() Config {
	return Config{
		MaxIterations: 10_000_000,
		LazyStrict:    false,
		LazyBFS:       false,
		LazyMaxDepth:  50,
		Workers:       4,
	}
}

// Load reads path (if non-empty) as a YAML config file merged over
// Default(), then applies the OVSM_MAX_ITERATIONS environment override.
// A non-existent path is not an error: Load simply returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return applyEnv(cfg), nil
			}
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if raw := os.Getenv(MaxIterationsEnvVar); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxIterations = n
		}
	}
	return cfg
}
