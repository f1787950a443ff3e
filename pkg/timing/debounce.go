package timing

import (
	"sync"
	"time"
)

// Debouncer delays fn until delay has passed without another Call. Only the
// argument of the last Call in a burst is used, exactly once; superseded calls are
// dropped, never queued.
type Debouncer[T any] struct {
	mu    sync.Mutex
	fn    func(T)
	delay time.Duration
	clock Clock
	timer Timer
	gen   uint64
}

// NewDebouncer wraps fn. A nil clock uses SystemClock.
func NewDebouncer[T any](fn func(T), delay time.Duration, clock Clock) *Debouncer[T] {
	if clock == nil {
		clock = SystemClock()
	}
	return &Debouncer[T]{fn: fn, delay: delay, clock: clock}
}

// Call cancels any pending execution and schedules fn(arg) delay from now.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen, arg)
	})
}

// CancelPending drops the scheduled execution, if any.
func (d *Debouncer[T]) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether an execution is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	// A system timer can fire while Call/CancelPending is stopping it.
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(arg)
}
