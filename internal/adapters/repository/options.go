package repository

import (
	"time"

	"github.com/okian/stylematch/pkg/logger"
)

const defaultNewItemWindow = 30 * 24 * time.Hour

type settings struct {
	newItemWindow time.Duration
	now           func() time.Time
	logger        logger.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		newItemWindow: defaultNewItemWindow,
		now:           time.Now,
		logger:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to a store.
type Option func(*settings)

// WithNewItemWindow sets how long after first being seen an item counts as new.
func WithNewItemWindow(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.newItemWindow = d
		}
	}
}

// WithClock overrides the time source used to derive item newness.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
