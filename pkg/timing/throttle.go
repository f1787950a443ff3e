package timing

import (
	"sync"
	"time"
)

// Throttler runs fn on the leading edge and drops every further call until
// interval has elapsed since the last execution.
type Throttler[T any] struct {
	mu       sync.Mutex
	fn       func(T)
	interval time.Duration
	clock    Clock
	last     time.Time
	fired    bool
}

// NewThrottler wraps fn. A nil clock uses SystemClock.
func NewThrottler[T any](fn func(T), interval time.Duration, clock Clock) *Throttler[T] {
	if clock == nil {
		clock = SystemClock()
	}
	return &Throttler[T]{fn: fn, interval: interval, clock: clock}
}

// Call executes fn(arg) when the window is open and reports whether it ran.
func (t *Throttler[T]) Call(arg T) bool {
	t.mu.Lock()
	now := t.clock.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return false
	}
	t.last = now
	t.fired = true
	t.mu.Unlock()

	t.fn(arg)
	return true
}

// Reset reopens the window immediately.
func (t *Throttler[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fired = false
	t.last = time.Time{}
}
