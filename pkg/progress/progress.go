// Package progress prints completion estimates for long running loops.
package progress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/stn-common/pkg/logger"
	"github.com/huynhanx03/stn-common/pkg/settings"
	"github.com/huynhanx03/stn-common/pkg/timer"
	"github.com/huynhanx03/stn-common/pkg/utils"
)

const (
	defaultInterval   = time.Second
	defaultLabel      = "progress"
	defaultClockStep  = 100 * time.Millisecond
	unknownEstimation = "?"
)

// ErrInvalidTotal is returned when a Meter is created for a non-positive amount of work.
var ErrInvalidTotal = errors.New("progress: total must be positive")

// Meter counts finished work items and prints a status line with an ETA.
// It is NOT thread-safe.
type Meter struct {
	total     int64
	done      int64
	start     time.Time
	lastPrint time.Time
	finished  bool

	label    string
	interval time.Duration
	out      io.Writer
	clock    timer.Timer
	ownClock bool
	log      *zap.Logger
}

// Option configures a Meter.
type Option func(*Meter)

// WithWriter sets where status lines are printed. Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(m *Meter) { m.out = w }
}

// WithInterval sets the minimum time between two printed lines.
func WithInterval(d time.Duration) Option {
	return func(m *Meter) { m.interval = d }
}

// WithClock replaces the default cached clock. The Meter does not stop a supplied clock.
func WithClock(c timer.Timer) Option {
	return func(m *Meter) { m.clock = c }
}

// WithLogger also emits every printed line as a structured info entry.
func WithLogger(l *zap.Logger) Option {
	return func(m *Meter) { m.log = l }
}

// WithLabel sets the prefix of status lines.
func WithLabel(label string) Option {
	return func(m *Meter) { m.label = label }
}

// WithConfig applies the interval and label from cfg. Zero fields keep the defaults.
func WithConfig(cfg *settings.Progress) Option {
	return func(m *Meter) {
		if cfg == nil {
			return
		}
		if cfg.Interval > 0 {
			m.interval = utils.ToDurationMs(cfg.Interval)
		}
		if cfg.Label != "" {
			m.label = cfg.Label
		}
	}
}

// New starts a Meter for total items.
// Call Done when finished to release the default clock.
func New(total int64, opts ...Option) (*Meter, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTotal, total)
	}

	m := &Meter{
		total:    total,
		label:    defaultLabel,
		interval: defaultInterval,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = timer.NewCachedTimer(defaultClockStep)
		m.ownClock = true
	}
	m.log = logger.OrNop(m.log)
	m.start = m.clock.Now()
	m.lastPrint = m.start
	return m, nil
}

// Step records one finished item.
func (m *Meter) Step() {
	m.Add(1)
}

// Add records n finished items. The count never exceeds the total.
func (m *Meter) Add(n int64) {
	if m.finished || n <= 0 {
		return
	}
	m.done = min(m.done+n, m.total)

	now := m.clock.Now()
	if m.done == m.total || now.Sub(m.lastPrint) >= m.interval {
		m.print(now)
	}
}

// Done prints the final line and releases the default clock.
func (m *Meter) Done() {
	if m.finished {
		return
	}
	now := m.clock.Now()
	if !m.lastPrint.Equal(now) || m.done != m.total {
		m.print(now)
	}
	m.finished = true
	if m.ownClock {
		m.clock.Stop()
	}
}

// Completed returns the number of finished items.
func (m *Meter) Completed() int64 {
	return m.done
}

// Line formats the current status without printing it.
func (m *Meter) Line() string {
	return m.line(m.clock.Now())
}

func (m *Meter) line(now time.Time) string {
	elapsed := now.Sub(m.start).Round(time.Second)
	pct := 100 * float64(m.done) / float64(m.total)

	eta := unknownEstimation
	if remaining, ok := Estimate(now.Sub(m.start), m.done, m.total); ok {
		eta = remaining.String()
	}
	return fmt.Sprintf("%s: %.1f%% (%d/%d) elapsed %s, ETA %s", m.label, pct, m.done, m.total, elapsed, eta)
}

func (m *Meter) print(now time.Time) {
	m.lastPrint = now
	fmt.Fprintln(m.out, m.line(now))
	m.log.Info("progress",
		zap.String("label", m.label),
		zap.Int64("done", m.done),
		zap.Int64("total", m.total),
		zap.Duration("elapsed", now.Sub(m.start)),
	)
}

// Estimate extrapolates the time remaining from the time spent on done of total items,
// rounded to the second. It reports false while nothing is done.
func Estimate(elapsed time.Duration, done, total int64) (time.Duration, bool) {
	if done <= 0 || total <= 0 {
		return 0, false
	}
	if done >= total {
		return 0, true
	}
	remaining := time.Duration(float64(elapsed) * float64(total-done) / float64(done))
	return remaining.Round(time.Second), true
}
