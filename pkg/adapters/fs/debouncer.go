package fs

import (
	"sync"
	"time"

	"github.com/phantomcms/phantom/pkg/core"
)

// debouncer coalesces bursts of filesystem events per slug. Editors
// commonly emit several writes for a single save; only the last one
// within the interval is forwarded.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

// add schedules an event for delivery. A pending timer for the same
// slug/type pair is pushed back instead of firing twice.
func (d *debouncer) add(e core.Event, send func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := e.Slug + "|" + string(e.Type)
	if t, ok := d.timers[key]; ok {
		// Reset only if the timer has not fired yet. A fired timer's
		// callback is already on its way, schedule a fresh one instead.
		if t.Stop() {
			t.Reset(d.interval)
			return
		}
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			send(e)
		}
	})
	d.timers[key] = t
}

// stopAndWait rejects new events and waits for in-flight timers to
// finish, bounded by the timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
