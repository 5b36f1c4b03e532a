package utils

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending function per key. Every Trigger resets
// the key's timer; the latest function runs once the key has been quiet for
// the configured delay.
//
// Each key has a generation, bumped by Trigger, Cancel, Exclusive and Stop.
// A fired function runs under the key's lock and only if its generation is
// still current, so a superseded call never runs after a later write.
type Debouncer struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
	gens   map[string]uint64
	locks  map[string]*sync.Mutex
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		gens:   make(map[string]uint64),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Trigger schedules fn for key, replacing any pending call.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked(key)
	d.gens[key]++
	gen := d.gens[key]
	lock := d.keyLock(key)

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		lock.Lock()
		defer lock.Unlock()
		if !d.current(key, gen) {
			return
		}
		fn()
	})
	d.timers[key] = t
}

// Cancel drops the pending call for key and reports whether there was one.
// A call that has already fired but not yet started is dropped too.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gens[key]++
	return d.stopLocked(key)
}

// Exclusive cancels any call for key and runs fn under the key's lock. It
// waits for a call that is already running.
func (d *Debouncer) Exclusive(key string, fn func() error) error {
	d.mu.Lock()
	d.gens[key]++
	d.stopLocked(key)
	lock := d.keyLock(key)
	d.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// Pending returns the number of keys with a scheduled call.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop cancels every pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key := range d.gens {
		d.gens[key]++
		d.stopLocked(key)
	}
}

// stopLocked stops key's timer. Callers hold d.mu.
func (d *Debouncer) stopLocked(key string) bool {
	t, ok := d.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(d.timers, key)
	return true
}

// keyLock returns key's write lock. Callers hold d.mu.
func (d *Debouncer) keyLock(key string) *sync.Mutex {
	l, ok := d.locks[key]
	if !ok {
		l = &sync.Mutex{}
		d.locks[key] = l
	}
	return l
}

func (d *Debouncer) current(key string, gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gens[key] == gen
}
