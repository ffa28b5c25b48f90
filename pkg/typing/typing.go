// Package typing reveals the hero name one character at a time and then
// hides the caret.
package typing

import (
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// Timing of the animation.
const (
	StartDelay   = 500 * time.Millisecond
	TickInterval = 100 * time.Millisecond
	CaretDelay   = 2000 * time.Millisecond
)

// ElementID is the id of the element receiving the text.
const ElementID = "typing-text"

// State is the animator's phase.
type State int

const (
	Pending State = iota
	Typing
	Done
	Finished
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Typing:
		return "typing"
	case Done:
		return "done"
	case Finished:
		return "finished"
	}
	return "unknown"
}

type (
	begin    struct{}
	tick     struct{}
	caretOff struct{}
)

// Animator types a fixed string. Characters are runes.
// A nil Animator ignores every call.
type Animator struct {
	text    []rune
	index   int
	state   State
	started bool
}

// New creates an animator for text.
func New(text string) *Animator {
	return &Animator{text: []rune(text)}
}

// State returns the current phase.
func (a *Animator) State() State {
	if a == nil {
		return Finished
	}
	return a.state
}

// Typed returns the characters revealed so far.
func (a *Animator) Typed() string {
	if a == nil {
		return ""
	}
	return string(a.text[:a.index])
}

// Text returns the full string.
func (a *Animator) Text() string {
	if a == nil {
		return ""
	}
	return string(a.text)
}

// Start clears the element and schedules the animation.
// It has no effect after the first call.
func (a *Animator) Start() core.Effects {
	if a == nil || a.started {
		return core.Effects{}
	}
	a.started = true

	var fx core.Effects
	fx.Do(js.SetText(js.ID(ElementID), ""))
	fx.After(StartDelay, begin{})
	return fx
}

// HandleInfo advances the animation on its own deferred messages.
func (a *Animator) HandleInfo(msg any) (core.Effects, bool) {
	var fx core.Effects
	switch msg.(type) {
	case begin:
		if a == nil {
			return fx, true
		}
		a.state = Typing
		fx.After(TickInterval, tick{})
	case tick:
		if a == nil {
			return fx, true
		}
		if a.index < len(a.text) {
			a.index++
			fx.Do(js.SetText(js.ID(ElementID), a.Typed()))
			fx.After(TickInterval, tick{})
			return fx, true
		}
		a.state = Done
		fx.After(CaretDelay, caretOff{})
	case caretOff:
		if a == nil {
			return fx, true
		}
		a.state = Finished
		fx.Do(js.SetStyle(js.ID(ElementID), "border-right", "none"))
	default:
		return fx, false
	}
	return fx, true
}
