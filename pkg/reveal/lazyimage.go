package reveal

import (
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
)

// LoadedClass marks an image that has been displayed.
const LoadedClass = "loaded"

// LazyImage marks an image as loaded the first time any part of it is
// visible. A nil LazyImage ignores every call.
type LazyImage struct {
	id  string
	obs *viewport.Observer
}

// NewLazyImage observes the image with id.
func NewLazyImage(id string) *LazyImage {
	obs := viewport.NewObserver(viewport.Options{})
	obs.Observe(id)
	return &LazyImage{id: id, obs: obs}
}

// Loaded reports whether the image has been marked.
func (l *LazyImage) Loaded() bool {
	return l != nil && !l.obs.Observing(l.id)
}

// Observe marks the image once it enters the viewport.
func (l *LazyImage) Observe(v viewport.Viewport, rects []viewport.Rect) core.Effects {
	var fx core.Effects
	if l == nil {
		return fx
	}
	for _, id := range l.obs.Check(v, rects) {
		l.obs.Unobserve(id)
		fx.Do(js.AddClass(js.ID(id), LoadedClass))
	}
	return fx
}
