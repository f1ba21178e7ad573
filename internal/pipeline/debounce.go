package pipeline

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence delay applied to free-text input
// before recomputing. Discrete control changes bypass debouncing and
// recompute immediately.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback after a fixed
// quiescence delay. Each Trigger resets the timer; only the most recent
// callback runs.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay falls back to
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiescence delay, replacing any
// previously scheduled callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
