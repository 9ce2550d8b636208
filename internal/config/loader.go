package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/stylematch/internal/adapters/repository"
)

const (
	envPrefix  = "STYLEMATCH_"
	envFileVar = "STYLEMATCH_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STYLEMATCH_CONFIG is set
//  3. env (prefix STYLEMATCH_, "__" separates nested keys)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// STYLEMATCH_MATCHING__WEIGHTS__AESTHETIC -> matching.weights.aesthetic
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		if s == envFileVar {
			return ""
		}
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks process settings and the matching configuration.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "json" && c.LogFormat != "console":
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	case c.MaxPageLimit < 1:
		return fmt.Errorf("%w: max_page_limit must be positive", ErrInvalidConfig)
	case c.BatchWorkers < 1:
		return fmt.Errorf("%w: batch_workers must be positive", ErrInvalidConfig)
	case c.NewItemWindow <= 0:
		return fmt.Errorf("%w: new_item_window must be positive", ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case repository.DriverMemory:
	case repository.DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if !slices.IsSorted(c.Metrics.LatencyBuckets) {
		return fmt.Errorf("%w: metrics.latency_buckets must be ascending", ErrInvalidConfig)
	}

	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("%w: matching: %w", ErrInvalidConfig, err)
	}
	return nil
}
