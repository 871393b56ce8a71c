// Package debounce coalesces bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once no further
// trigger has arrived for the configured delay. Runs never overlap.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool

	run sync.Mutex
}

// New returns a debouncer; a zero delay runs every trigger synchronously
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing anything still pending
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.exec(fn)
		return
	}

	d.pending = fn
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
	} else {
		d.timer.Reset(d.delay)
	}
	d.mu.Unlock()
}

// Pending reports whether a call is waiting for its window to elapse
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush runs the pending call now, if any
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.take()
	d.mu.Unlock()
	d.exec(fn)
}

// Stop drops any pending call and ignores later triggers
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.stopped = true
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.take()
	d.mu.Unlock()
	d.exec(fn)
}

// take must be called with mu held
func (d *Debouncer) take() func() {
	fn := d.pending
	d.pending = nil
	return fn
}

func (d *Debouncer) exec(fn func()) {
	if fn == nil {
		return
	}
	d.run.Lock()
	defer d.run.Unlock()
	fn()
}
