package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// DefaultDebounceWindow is the default time window for coalescing map events.
// Editors and sync tools often touch a file several times per save; one
// reload per burst is enough.
const DefaultDebounceWindow = 250 * time.Millisecond

// Debouncer coalesces rapid map change events into batched reloads. Each
// changed building is reported at most once per window, and the batch handed
// to the callback is sorted so reloads happen in a stable order.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(buildings []string)
}

// NewDebouncer creates a debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func(buildings []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed building and restarts the debounce window. Interned
// handles deduplicate repeated events for the same building.
func (d *Debouncer) Add(building string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(building)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()

	// Flush may have drained the set between the timer firing and this
	// goroutine taking the lock.
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	buildings := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		// Asynchronous so a slow reload never blocks the timer goroutine.
		go d.callback(buildings)
	}
}

// Flush immediately delivers all pending buildings to the callback. Unlike
// the timer path it blocks until the callback returns, which shutdown paths
// rely on to finish outstanding reloads.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; let that delivery run instead of
			// handing out the same batch twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}

	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	buildings := d.drainLocked()
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(buildings)
	}
}

// drainLocked empties the pending set and returns its contents sorted.
// Callers must hold d.mu.
func (d *Debouncer) drainLocked() []string {
	buildings := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		buildings = append(buildings, handle.Value())
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	slices.Sort(buildings)
	return buildings
}
