package queue

import (
	"github.com/huynhanx03/stn-common/pkg/settings"
	"github.com/huynhanx03/stn-common/pkg/utils"
)

const (
	// DefaultCapacity is the backing buffer size used by NewDefaultFIFOSet.
	DefaultCapacity = 4

	// minCapacity is the smallest backing buffer a FIFOSet ever holds.
	minCapacity = 4

	// defaultMaxCapacity is the largest backing buffer a FIFOSet grows to.
	defaultMaxCapacity = 1 << 30

	// decodeInitialCapacity bounds the buffer allocated before any element of a stream is read.
	decodeInitialCapacity = 1 << 12
)

// Option configures a FIFOSet.
type Option func(*options)

type options struct {
	maxCapacity int
}

func defaultOptions() options {
	return options{maxCapacity: defaultMaxCapacity}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxCapacity limits the size of the backing buffer.
// n is rounded down to a power of two and never goes below the minimum capacity.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		if n < minCapacity {
			n = minCapacity
		}
		o.maxCapacity = utils.FloorToPowerOfTwo(n)
	}
}

// WithConfig applies the limits from cfg. A zero MaxCapacity keeps the default.
func WithConfig(cfg *settings.Queue) Option {
	return func(o *options) {
		if cfg == nil || cfg.MaxCapacity == 0 {
			return
		}
		WithMaxCapacity(cfg.MaxCapacity)(o)
	}
}
