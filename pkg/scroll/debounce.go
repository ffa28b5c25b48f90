package scroll

import (
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// DebounceWait is the quiet period before a debounced value is released.
const DebounceWait = 10 * time.Millisecond

type tick struct {
	key string
	seq uint64
}

// Debouncer releases the latest triggered value once no new trigger arrived
// for its wait. Debouncers sharing a handler need distinct keys.
type Debouncer[T any] struct {
	key    string
	wait   time.Duration
	seq    uint64
	latest T
}

// NewDebouncer creates a debouncer. A non-positive wait means DebounceWait.
func NewDebouncer[T any](key string, wait time.Duration) *Debouncer[T] {
	if wait <= 0 {
		wait = DebounceWait
	}
	return &Debouncer[T]{key: key, wait: wait}
}

// Trigger records v and restarts the wait.
func (d *Debouncer[T]) Trigger(v T) core.Effects {
	var fx core.Effects
	d.seq++
	d.latest = v
	fx.After(d.wait, tick{key: d.key, seq: d.seq})
	return fx
}

// Fired inspects a deferred message. ok reports whether msg belongs to d;
// due reports whether it ends the wait, in which case v is the latest value.
func (d *Debouncer[T]) Fired(msg any) (v T, due, ok bool) {
	t, isTick := msg.(tick)
	if !isTick || t.key != d.key {
		return v, false, false
	}
	if t.seq != d.seq {
		return v, false, true
	}
	return d.latest, true, true
}
