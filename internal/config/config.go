// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
	"time"

	"github.com/okian/stylematch/internal/domain/matching"
)

// StoreConfig selects and sizes the catalog store.
type StoreConfig struct {
	// Driver is "memory" or "postgres".
	Driver string `koanf:"driver"`

	// DSN is the Postgres connection string.
	DSN string `koanf:"dsn"`

	// FixturePath optionally seeds the memory store from a YAML catalog.
	FixturePath string `koanf:"fixture_path"`

	MaxOpenConns int `koanf:"max_open_conns"`
	MaxIdleConns int `koanf:"max_idle_conns"`
}

// RedisConfig configures the optional profile cache. An empty Addr disables it.
type RedisConfig struct {
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	ProfileTTL time.Duration `koanf:"profile_ttl"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// MetricsConfig names and shapes the exported Prometheus series.
type MetricsConfig struct {
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`

	// LatencyBuckets are histogram upper bounds in milliseconds. Empty keeps
	// the built-in layout.
	LatencyBuckets []float64 `koanf:"latency_buckets"`

	// ConstLabels are attached to every series, e.g. {env: prod}.
	ConstLabels map[string]string `koanf:"const_labels"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxPageLimit caps the limit query parameter of match listings.
	MaxPageLimit int `koanf:"max_page_limit"`

	// BatchWorkers bounds concurrent curations in a batch request.
	BatchWorkers int `koanf:"batch_workers"`

	// NewItemWindow is how long after first being seen an item counts as new.
	NewItemWindow time.Duration `koanf:"new_item_window"`

	Store    StoreConfig     `koanf:"store"`
	Redis    RedisConfig     `koanf:"redis"`
	Metrics  MetricsConfig   `koanf:"metrics"`
	Matching matching.Config `koanf:"matching"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "json",
		Addr:          ":9080",
		MaxPageLimit:  100,
		BatchWorkers:  runtime.NumCPU(),
		NewItemWindow: 30 * 24 * time.Hour,
		Store: StoreConfig{
			Driver:       "memory",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Redis: RedisConfig{
			ProfileTTL: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Namespace: "stylematch",
			Subsystem: "matching",
		},
		Matching: matching.DefaultConfig(),
	}
}
