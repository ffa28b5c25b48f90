package core

import (
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// Clock abstracts time so timer-driven behavior can be tested deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Deferred is a message delivered back to a component's HandleInfo after Delay.
type Deferred struct {
	Delay time.Duration
	Msg   any
}

// Effects is the side-effect list produced by a state transition:
// client commands to run now and messages to deliver later.
type Effects struct {
	Commands js.Commands
	Deferred []Deferred
}

// Do appends client commands.
func (e *Effects) Do(cmds ...js.Command) {
	e.Commands = append(e.Commands, cmds...)
}

// After schedules msg for delivery after d.
func (e *Effects) After(d time.Duration, msg any) {
	e.Deferred = append(e.Deferred, Deferred{Delay: d, Msg: msg})
}

// Merge appends the effects of o, preserving order.
func (e *Effects) Merge(o Effects) {
	e.Commands = append(e.Commands, o.Commands...)
	e.Deferred = append(e.Deferred, o.Deferred...)
}

// IsEmpty reports whether there is nothing to do.
func (e Effects) IsEmpty() bool {
	return len(e.Commands) == 0 && len(e.Deferred) == 0
}
