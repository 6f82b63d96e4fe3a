// Package debounce collapses rapid bursts of events into a single evaluation
// of the last one after a quiescence window. Superseded work is cancelled,
// not queued.
package debounce

import (
	"sync"
	"time"
)

// Window is the default quiescence period before a scheduled task runs.
const Window = 300 * time.Millisecond

type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer with the given quiescence window; zero or negative
// falls back to the default.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = Window
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn after the quiescence window, cancelling any pending
// invocation first. Only the last fn of a rapid burst ever runs.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation outright.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
