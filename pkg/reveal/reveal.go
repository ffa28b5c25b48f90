// Package reveal runs the scroll-triggered animations: section content
// fading in, skill bars filling up and the profile image lazy-loading.
package reveal

import (
	"strconv"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
)

// VisibleClass is added to an element once it has been seen.
const VisibleClass = "visible"

// Group assigns an animation class to every element matching Selector.
type Group struct {
	Selector string
	Class    string
}

// DefaultGroups are the animated groups of the portfolio page, in order.
var DefaultGroups = []Group{
	{Selector: ".about-content", Class: "fade-in"},
	{Selector: ".highlight-item", Class: "scale-in"},
	{Selector: ".skill-category", Class: "slide-in-left"},
	{Selector: ".project-card", Class: "fade-in"},
	{Selector: ".achievement-card", Class: "scale-in"},
	{Selector: ".contact-item", Class: "slide-in-left"},
	{Selector: ".contact-form-wrapper", Class: "slide-in-right"},
}

// Options of the shared reveal observer.
var Options = viewport.Options{Threshold: 0.1, MarginBottom: -50}

// Animator reveals elements as they scroll into view. Elements stay
// observed after being revealed; the class is additive.
// A nil Animator ignores every call.
type Animator struct {
	groups []Group
	obs    *viewport.Observer
}

// New creates an animator for groups.
func New(groups []Group) *Animator {
	return &Animator{groups: groups, obs: viewport.NewObserver(Options)}
}

// TransitionDelay returns the stagger for the element at index in its group.
func TransitionDelay(index int) string {
	return strconv.FormatFloat(float64(index)/10, 'f', -1, 64) + "s"
}

// Initialize tags every member with its group class and stagger and starts
// observing it. members maps a group selector to element ids in document order.
func (a *Animator) Initialize(members map[string][]string) core.Effects {
	var fx core.Effects
	if a == nil {
		return fx
	}
	for _, g := range a.groups {
		for i, id := range members[g.Selector] {
			fx.Do(
				js.AddClass(js.ID(id), g.Class),
				js.SetStyle(js.ID(id), "transition-delay", TransitionDelay(i)),
			)
			a.obs.Observe(id)
		}
	}
	return fx
}

// Observing reports whether the element is watched.
func (a *Animator) Observing(id string) bool {
	return a != nil && a.obs.Observing(id)
}

// Observe reveals elements that entered the viewport.
func (a *Animator) Observe(v viewport.Viewport, rects []viewport.Rect) core.Effects {
	var fx core.Effects
	if a == nil {
		return fx
	}
	for _, id := range a.obs.Check(v, rects) {
		fx.Do(js.AddClass(js.ID(id), VisibleClass))
	}
	return fx
}
