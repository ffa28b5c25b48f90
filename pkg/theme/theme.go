// Package theme switches the page between light and dark color schemes and
// remembers each visitor's choice.
package theme

import (
	"context"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
)

// Preference is a color scheme.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// StorageKey is the local storage key mirrored on the client.
const StorageKey = "theme"

// PulseDuration is how long the toggle button stays rotated after a click.
const PulseDuration = 200 * time.Millisecond

// DOM hooks.
const (
	ToggleID = "theme-toggle"
	IconID   = "theme-icon"
	// Attribute is set on the document element.
	Attribute = "data-color-scheme"
)

// Parse returns the preference named by s.
func Parse(s string) (Preference, bool) {
	switch Preference(s) {
	case Light, Dark:
		return Preference(s), true
	}
	return "", false
}

// Toggled returns the opposite preference.
func (p Preference) Toggled() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Icon returns the toggle icon class: the sun offers a way out of dark mode.
func (p Preference) Icon() string {
	if p == Dark {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// Favicon returns an inline SVG data URL with the scheme's emoji.
func (p Preference) Favicon() string {
	glyph := "☀️"
	if p == Dark {
		glyph = "🌙"
	}
	return `data:image/svg+xml,<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		glyph + `</text></svg>`
}

type pulseDone struct{}

// Controller applies and persists a visitor's preference.
// A nil Controller ignores every call.
type Controller struct {
	repo    *Repository
	visitor string
	pref    Preference
	log     logging.Logger
}

// New creates a controller for visitor. When repo is nil or the visitor is
// anonymous the preference lives only as long as the connection.
func New(repo *Repository, visitor string, log logging.Logger) *Controller {
	if log == nil {
		log = logging.NopLogger{}
	}
	if visitor == "" {
		repo = nil
	}
	return &Controller{repo: repo, visitor: visitor, pref: Light, log: log}
}

// Preference returns the current preference.
func (c *Controller) Preference() Preference {
	if c == nil {
		return Light
	}
	return c.pref
}

// Load reads the persisted preference. When nothing is stored, clientValue
// (the browser's local storage copy) is adopted if valid.
func (c *Controller) Load(ctx context.Context, clientValue string) Preference {
	if c == nil {
		return Light
	}

	c.pref = Light
	if c.repo != nil {
		p, found, err := c.repo.Load(ctx, c.visitor)
		if err != nil {
			c.log.Warn("theme preference unavailable",
				logging.String("visitor", c.visitor), logging.Err(err))
		}
		if found {
			c.pref = p
			return c.pref
		}
	}
	if p, ok := Parse(clientValue); ok {
		c.pref = p
	}
	return c.pref
}

// Initialize loads the preference and applies it to the page.
func (c *Controller) Initialize(ctx context.Context, clientValue string) core.Effects {
	if c == nil {
		return core.Effects{}
	}
	c.Load(ctx, clientValue)

	fx := c.apply()
	fx.Do(js.Store(StorageKey, string(c.pref)))
	return fx
}

// Toggle flips the preference, persists it and pulses the toggle button.
func (c *Controller) Toggle(ctx context.Context) core.Effects {
	if c == nil {
		return core.Effects{}
	}

	c.pref = c.pref.Toggled()
	if c.repo != nil {
		if err := c.repo.Save(ctx, c.visitor, c.pref); err != nil {
			c.log.Error("failed to persist theme preference",
				logging.String("visitor", c.visitor), logging.Err(err))
		}
	}

	fx := c.apply()
	fx.Do(
		js.Store(StorageKey, string(c.pref)),
		js.SetStyle(js.ID(ToggleID), "transform", "scale(0.9) rotate(180deg)"),
	)
	fx.After(PulseDuration, pulseDone{})
	return fx
}

// HandleInfo handles the controller's deferred messages.
func (c *Controller) HandleInfo(msg any) (core.Effects, bool) {
	if _, ok := msg.(pulseDone); !ok || c == nil {
		return core.Effects{}, ok
	}

	var fx core.Effects
	fx.Do(js.SetStyle(js.ID(ToggleID), "transform", "scale(1) rotate(0deg)"))
	return fx, true
}

func (c *Controller) apply() core.Effects {
	var fx core.Effects
	fx.Do(
		js.SetAttr("", Attribute, string(c.pref)),
		js.SetAttr(js.ID(IconID), "class", c.pref.Icon()),
		js.SetFavicon(c.pref.Favicon()),
	)
	return fx
}
