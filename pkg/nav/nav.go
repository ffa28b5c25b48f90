// Package nav drives the navigation bar: the mobile menu, the link of the
// section currently under the navbar and the bar's scroll-dependent background.
package nav

import (
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
)

const (
	// ProbeOffset is added to the scroll position to pick the active section.
	ProbeOffset = 100.0
	// ScrolledThreshold is the scroll position past which the navbar turns opaque.
	ScrolledThreshold = 50.0
)

// DOM hooks.
const (
	NavbarID     = "navbar"
	ToggleID     = "nav-toggle"
	MenuID       = "nav-menu"
	LinkSelector = ".nav-link"
	ActiveClass  = "active"
)

// LinkSelectorFor returns the selector of the link pointing at section id.
func LinkSelectorFor(id string) string {
	return `.nav-link[href="#` + id + `"]`
}

// ActiveSection returns the first section, in document order, containing
// scrollY+ProbeOffset. ok is false when no section contains the probe.
func ActiveSection(scrollY float64, sections []viewport.Rect) (id string, ok bool) {
	probe := scrollY + ProbeOffset
	for _, s := range sections {
		if probe >= s.Top && probe < s.Bottom() {
			return s.ID, true
		}
	}
	return "", false
}

// Background returns the navbar background for scrollY.
func Background(scrollY float64) string {
	if scrollY > ScrolledThreshold {
		return "rgba(var(--color-slate-900-rgb), 0.98)"
	}
	return "rgba(var(--color-slate-900-rgb), 0.95)"
}

// Controller holds the navigation state of one page.
// A nil Controller ignores every call.
type Controller struct {
	menuOpen   bool
	active     string
	background string
}

// New creates a controller with the menu closed and no active link.
func New() *Controller {
	return &Controller{}
}

// MenuOpen reports whether the mobile menu is open.
func (c *Controller) MenuOpen() bool {
	return c != nil && c.menuOpen
}

// Active returns the section id of the active link, or "".
func (c *Controller) Active() string {
	if c == nil {
		return ""
	}
	return c.active
}

// ToggleMobileMenu flips the open state of the toggle and the menu.
func (c *Controller) ToggleMobileMenu() core.Effects {
	if c == nil {
		return core.Effects{}
	}
	c.menuOpen = !c.menuOpen
	return c.menuEffects()
}

// CloseMobileMenu closes the menu; it runs on every nav link click.
func (c *Controller) CloseMobileMenu() core.Effects {
	if c == nil {
		return core.Effects{}
	}
	c.menuOpen = false
	return c.menuEffects()
}

func (c *Controller) menuEffects() core.Effects {
	set := js.RemoveClass
	if c.menuOpen {
		set = js.AddClass
	}
	var fx core.Effects
	fx.Do(set(js.ID(ToggleID), ActiveClass), set(js.ID(MenuID), ActiveClass))
	return fx
}

// UpdateActiveNavLink marks the link of the section under the probe. When no
// section contains the probe every link is unmarked.
func (c *Controller) UpdateActiveNavLink(scrollY float64, sections []viewport.Rect) core.Effects {
	if c == nil {
		return core.Effects{}
	}
	id, _ := ActiveSection(scrollY, sections)
	if id == c.active {
		return core.Effects{}
	}
	c.active = id

	var fx core.Effects
	fx.Do(js.RemoveClass(LinkSelector, ActiveClass))
	if id != "" {
		fx.Do(js.AddClass(LinkSelectorFor(id), ActiveClass))
	}
	return fx
}

// UpdateNavbarBackground sets the navbar opacity for scrollY.
func (c *Controller) UpdateNavbarBackground(scrollY float64) core.Effects {
	if c == nil {
		return core.Effects{}
	}
	bg := Background(scrollY)
	if bg == c.background {
		return core.Effects{}
	}
	c.background = bg

	var fx core.Effects
	fx.Do(js.SetStyle(js.ID(NavbarID), "background", bg))
	return fx
}

// Scroll runs both scroll handlers.
func (c *Controller) Scroll(scrollY float64, sections []viewport.Rect) core.Effects {
	fx := c.UpdateActiveNavLink(scrollY, sections)
	fx.Merge(c.UpdateNavbarBackground(scrollY))
	return fx
}
