package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a clock that can be stopped once no longer needed.
type Timer interface {
	Now() time.Time
	Stop()
}

var (
	_ Timer = (*CachedTimer)(nil)
	_ Timer = SystemTimer{}
	_ Timer = (*ManualTimer)(nil)
)

// CachedTimer serves a time value refreshed every step by a background goroutine.
// Now is a single atomic load, which suits hot loops that only need coarse time.
type CachedTimer struct {
	now    atomic.Value
	step   time.Duration
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewCachedTimer starts a CachedTimer with the given resolution.
func NewCachedTimer(step time.Duration) *CachedTimer {
	t := &CachedTimer{
		step:   step,
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}
	t.now.Store(time.Now())

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *CachedTimer) run() {
	defer t.wg.Done()

	for {
		select {
		case now := <-t.ticker.C:
			t.now.Store(now)
		case <-t.done:
			t.ticker.Stop()
			return
		}
	}
}

// Now returns the last cached time.
func (t *CachedTimer) Now() time.Time {
	return t.now.Load().(time.Time)
}

// Stop terminates the refresh goroutine. It is safe to call more than once.
func (t *CachedTimer) Stop() {
	t.once.Do(func() {
		close(t.done)
	})
	t.wg.Wait()
}

// SystemTimer reads the wall clock on every call.
type SystemTimer struct{}

func (SystemTimer) Now() time.Time { return time.Now() }

func (SystemTimer) Stop() {}

// ManualTimer only moves when told to.
type ManualTimer struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTimer creates a ManualTimer reading start.
func NewManualTimer(start time.Time) *ManualTimer {
	return &ManualTimer{now: start}
}

func (m *ManualTimer) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualTimer) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *ManualTimer) Stop() {}
