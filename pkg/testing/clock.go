package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// ManualClock is a core.Clock whose time only moves when told to.
// Timers fire in deadline order; timers with equal deadlines fire in the
// order they were scheduled.
type ManualClock struct {
	now    time.Time
	timers []*ManualTimer
	seq    uint64
	mu     sync.Mutex
}

// ManualTimer is a timer created by ManualClock.
type ManualTimer struct {
	at      time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
	clock   *ManualClock
}

// NewManualClock creates a clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the clock reaches now+d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) core.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &ManualTimer{at: c.now.Add(d), seq: c.seq, f: f, clock: c}
	c.timers = append(c.timers, t)
	return t
}

// Stop cancels the timer.
func (t *ManualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// FireNext advances to the earliest pending deadline not after until and
// runs that timer. It reports whether a timer fired.
func (c *ManualClock) FireNext(until time.Time) bool {
	c.mu.Lock()
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	if len(c.timers) == 0 {
		c.mu.Unlock()
		return false
	}

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})

	next := c.timers[0]
	if next.at.After(until) {
		c.mu.Unlock()
		return false
	}
	if next.at.After(c.now) {
		c.now = next.at
	}
	next.fired = true
	c.timers = c.timers[1:]
	c.mu.Unlock()

	next.f()
	return true
}

// Set moves the clock to t without firing timers. Earlier times are ignored.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}

// Advance moves the clock forward by d, firing due timers in order.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.Now().Add(d)
	for c.FireNext(target) {
	}
	c.Set(target)
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
