// Package metrics provides Prometheus metrics for the stylematch service.
package metrics

import (
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the upper bounds, in milliseconds, of the
// latency histograms. Unsorted or empty bounds are ignored.
func WithLatencyBuckets(bounds []float64) Option {
	return func(m *Manager) {
		if len(bounds) > 0 && slices.IsSorted(bounds) {
			m.latencyBuckets = slices.Clone(bounds)
		}
	}
}

// WithConstLabels adds constant labels to all metrics, e.g. the deployment
// environment.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(m *Manager) {
		for k, v := range labels {
			m.constLabels[k] = v
		}
	}
}

// WithPrometheusRegistry sets the registerer collectors are added to.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
