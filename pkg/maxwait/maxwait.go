// Package maxwait tracks the largest wait currently attached to any key,
// e.g. the wait constraints labelling the contingent links of a temporal network.
package maxwait

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/stn-common/pkg/datastructs/prioritymap"
	"github.com/huynhanx03/stn-common/pkg/logger"
)

// ErrNegativeWait is returned when a wait below zero is recorded.
var ErrNegativeWait = errors.New("maxwait: negative wait")

// Tracker maps keys to waits and answers which key carries the largest one.
// It is NOT thread-safe.
type Tracker[K comparable] struct {
	waits *prioritymap.Map[K, time.Duration]
	log   *zap.Logger
}

// Option configures a Tracker.
type Option func(*config)

type config struct {
	log *zap.Logger
}

// WithLogger logs changes of the maximum at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// New creates an empty Tracker.
func New[K comparable](opts ...Option) *Tracker[K] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &Tracker[K]{
		waits: prioritymap.New[K, time.Duration](),
		log:   logger.OrNop(c.log),
	}
}

// Observe records wait for key, keeping the larger of the stored and the new value.
func (t *Tracker[K]) Observe(key K, wait time.Duration) error {
	if wait < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeWait, wait)
	}
	if cur, ok := t.waits.Get(key); ok && cur >= wait {
		return nil
	}
	t.update(key, wait)
	return nil
}

// Set records wait for key, replacing any previous value.
func (t *Tracker[K]) Set(key K, wait time.Duration) error {
	if wait < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeWait, wait)
	}
	t.update(key, wait)
	return nil
}

// Remove forgets key and reports whether it was tracked.
func (t *Tracker[K]) Remove(key K) bool {
	before, _, _ := t.waits.Max()
	if !t.waits.Delete(key) {
		return false
	}
	if before == key {
		t.logMax()
	}
	return true
}

// Wait returns the wait recorded for key.
func (t *Tracker[K]) Wait(key K) (time.Duration, bool) {
	return t.waits.Get(key)
}

// Max returns the key with the largest wait.
func (t *Tracker[K]) Max() (K, time.Duration, bool) {
	return t.waits.Max()
}

// Len returns the number of tracked keys.
func (t *Tracker[K]) Len() int {
	return t.waits.Len()
}

func (t *Tracker[K]) update(key K, wait time.Duration) {
	beforeKey, beforeWait, had := t.waits.Max()
	t.waits.Set(key, wait)
	if afterKey, afterWait, _ := t.waits.Max(); !had || afterKey != beforeKey || afterWait != beforeWait {
		t.logMax()
	}
}

func (t *Tracker[K]) logMax() {
	if ce := t.log.Check(zap.DebugLevel, "max wait changed"); ce != nil {
		key, wait, ok := t.waits.Max()
		if !ok {
			ce.Write(zap.Bool("empty", true))
			return
		}
		ce.Write(zap.Any("key", key), zap.Duration("wait", wait))
	}
}
