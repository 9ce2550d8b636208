package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/okian/stylematch/pkg/logger"
)

type options struct {
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

func defaultOptions() options {
	return options{
		logger: logger.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Option applies a configuration option to a Ranker or Curator.
type Option func(*options)

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source used for collection timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how curated collections get their id.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}
