package effects

import (
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// LoadedClass is added to the body once the window has loaded, hiding the
// loading overlay.
const LoadedClass = "loaded"

// Loader dismisses the loading overlay. A nil Loader ignores every call.
type Loader struct {
	loaded bool
}

// NewLoader creates a loader with the overlay showing.
func NewLoader() *Loader {
	return &Loader{}
}

// Loaded reports whether the overlay was dismissed.
func (l *Loader) Loaded() bool {
	return l != nil && l.loaded
}

// MarkLoaded dismisses the overlay. Repeated calls do nothing.
func (l *Loader) MarkLoaded() core.Effects {
	var fx core.Effects
	if l == nil || l.loaded {
		return fx
	}
	l.loaded = true
	fx.Do(js.AddClass("body", LoadedClass))
	return fx
}
