// Package filter shows and hides project cards by category.
package filter

import (
	"strconv"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/samber/lo"
)

// All selects every card.
const All = "all"

// Timing of the card transitions.
const (
	Stagger   = 100 * time.Millisecond
	HideDelay = 300 * time.Millisecond
)

// Transition is applied to cards as they fade in.
const Transition = "opacity 0.5s ease-out, transform 0.5s ease-out"

// DOM hooks.
const (
	ButtonSelector = ".filter-btn"
	ActiveClass    = "active"
)

// ButtonSelectorFor returns the selector of the button for value. value must
// be one Known to the filter; it is not escaped.
func ButtonSelectorFor(value string) string {
	return `.filter-btn[data-filter="` + value + `"]`
}

// Card is a project card and its last applied inline style.
type Card struct {
	ID         string
	Category   string
	Display    string
	Opacity    float64
	Offset     int
	Transition string
}

// Shown reports whether the card takes part in layout.
func (c Card) Shown() bool {
	return c.Display != "none"
}

func (c Card) transform() string {
	return "translateY(" + strconv.Itoa(c.Offset) + "px)"
}

type (
	showCard struct {
		gen   uint64
		index int
	}
	hideCard struct {
		gen   uint64
		index int
	}
)

// Filter holds the active selection. Each selection gets a generation;
// deferred transitions of an older generation are dropped.
// A nil Filter ignores every call.
type Filter struct {
	cards  []Card
	active string
	gen    uint64
}

// New creates a filter over cards, in document order, with All active.
func New(cards []Card) *Filter {
	f := &Filter{cards: make([]Card, len(cards)), active: All}
	for i, c := range cards {
		c.Display = "block"
		c.Opacity = 1
		f.cards[i] = c
	}
	return f
}

// Active returns the selected filter value.
func (f *Filter) Active() string {
	if f == nil {
		return All
	}
	return f.active
}

// Cards returns a copy of the cards.
func (f *Filter) Cards() []Card {
	if f == nil {
		return nil
	}
	return append([]Card(nil), f.cards...)
}

// Visible returns the ids of cards currently shown.
func (f *Filter) Visible() []string {
	if f == nil {
		return nil
	}
	shown := lo.Filter(f.cards, func(c Card, _ int) bool { return c.Shown() })
	return lo.Map(shown, func(c Card, _ int) string { return c.ID })
}

// Matches reports whether a card of category passes value.
func Matches(value, category string) bool {
	return value == All || value == category
}

// Known reports whether value is All or the category of some card. Only
// those values have a filter button.
func (f *Filter) Known(value string) bool {
	if f == nil {
		return false
	}
	return value == All || lo.ContainsBy(f.cards, func(c Card) bool { return c.Category == value })
}

// Select activates value and starts the card transitions. Values that are
// not Known are ignored.
func (f *Filter) Select(value string) core.Effects {
	var fx core.Effects
	if !f.Known(value) {
		return fx
	}

	f.gen++
	f.active = value
	fx.Do(
		js.RemoveClass(ButtonSelector, ActiveClass),
		js.AddClass(ButtonSelectorFor(value), ActiveClass),
	)

	for i := range f.cards {
		c := &f.cards[i]
		sel := js.ID(c.ID)
		if Matches(value, c.Category) {
			c.Display = "block"
			c.Opacity = 0
			c.Offset = 20
			fx.Do(
				js.SetStyle(sel, "display", c.Display),
				js.SetStyle(sel, "opacity", "0"),
				js.SetStyle(sel, "transform", c.transform()),
			)
			fx.After(time.Duration(i)*Stagger, showCard{gen: f.gen, index: i})
			continue
		}
		c.Opacity = 0
		c.Offset = -20
		fx.Do(
			js.SetStyle(sel, "opacity", "0"),
			js.SetStyle(sel, "transform", c.transform()),
		)
		fx.After(HideDelay, hideCard{gen: f.gen, index: i})
	}
	return fx
}

// HandleInfo completes card transitions of the current selection.
func (f *Filter) HandleInfo(msg any) (core.Effects, bool) {
	var fx core.Effects
	switch m := msg.(type) {
	case showCard:
		if f == nil || m.gen != f.gen {
			return fx, true
		}
		c := &f.cards[m.index]
		c.Opacity = 1
		c.Offset = 0
		c.Transition = Transition
		sel := js.ID(c.ID)
		fx.Do(
			js.SetStyle(sel, "opacity", "1"),
			js.SetStyle(sel, "transform", "translateY(0)"),
			js.SetStyle(sel, "transition", Transition),
		)
	case hideCard:
		if f == nil || m.gen != f.gen {
			return fx, true
		}
		c := &f.cards[m.index]
		c.Display = "none"
		fx.Do(js.SetStyle(js.ID(c.ID), "display", "none"))
	default:
		return fx, false
	}
	return fx, true
}
