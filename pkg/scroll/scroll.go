// Package scroll handles same-page anchor navigation and coalesces bursts of
// scroll reports.
package scroll

import (
	"strings"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
	"github.com/samber/lo"
)

// NavbarFallback is used when the navbar height is unknown.
const NavbarFallback = 80.0

// Target resolves href to an element id. ok is false for anything other than
// a non-empty same-page fragment.
func Target(href string) (id string, ok bool) {
	if !strings.HasPrefix(href, "#") || href == "#" {
		return "", false
	}
	return href[1:], true
}

// Scroller scrolls to anchor targets below the fixed navbar.
// A nil Scroller ignores every call.
type Scroller struct {
	last string
}

// New creates a scroller.
func New() *Scroller {
	return &Scroller{}
}

// Last returns the id of the last target scrolled to.
func (s *Scroller) Last() string {
	if s == nil {
		return ""
	}
	return s.last
}

// ScrollToAnchor scrolls to the element href points at, leaving navbarHeight
// of room above it, and records the fragment in the history. targets holds
// the reported rects of sections and other link targets.
func (s *Scroller) ScrollToAnchor(href string, targets []viewport.Rect, navbarHeight float64) core.Effects {
	var fx core.Effects
	if s == nil {
		return fx
	}
	id, ok := Target(href)
	if !ok {
		return fx
	}
	target, found := lo.Find(targets, func(r viewport.Rect) bool { return r.ID == id })
	if !found {
		return fx
	}
	if navbarHeight <= 0 {
		navbarHeight = NavbarFallback
	}

	s.last = id
	fx.Do(
		js.ScrollTo(target.Top-navbarHeight),
		js.PushState(href),
	)
	return fx
}
