// Package viewport computes element visibility from geometry reported by
// the client and tracks which elements are being watched.
//
// An element intersects when its box overlaps the viewport (shrunk or grown
// at the bottom by the margin) and the visible fraction of the element is at
// least the threshold. Observers fire on entry only: an element that stays
// in view does not fire again until it leaves and re-enters.
package viewport

import "math"

// Rect is an element box in document coordinates.
type Rect struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom returns the lower edge of the box.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Viewport is the visible window of the document.
type Viewport struct {
	ScrollY float64
	Height  float64
}

// Options configures an observer.
type Options struct {
	// Threshold is the minimum visible fraction, 0..1.
	Threshold float64
	// MarginBottom adjusts the bottom edge of the viewport in pixels.
	// Negative values shrink it.
	MarginBottom float64
}

// Ratio returns the visible fraction of r and whether any of it is visible.
func Ratio(r Rect, v Viewport, marginBottom float64) (float64, bool) {
	top := v.ScrollY
	bottom := v.ScrollY + v.Height + marginBottom
	if bottom < top {
		return 0, false
	}

	if r.Height <= 0 {
		if r.Top >= top && r.Top <= bottom {
			return 1, true
		}
		return 0, false
	}

	overlap := math.Min(r.Bottom(), bottom) - math.Max(r.Top, top)
	if overlap <= 0 {
		return 0, false
	}
	return overlap / r.Height, true
}

// Intersects reports whether r is visible enough under opts.
func Intersects(r Rect, v Viewport, opts Options) bool {
	ratio, visible := Ratio(r, v, opts.MarginBottom)
	return visible && ratio >= opts.Threshold
}

// Observer watches a set of element ids.
type Observer struct {
	opts    Options
	watched map[string]bool
	inside  map[string]bool
}

// NewObserver creates an observer with opts.
func NewObserver(opts Options) *Observer {
	return &Observer{
		opts:    opts,
		watched: make(map[string]bool),
		inside:  make(map[string]bool),
	}
}

// Options returns the observer's options.
func (o *Observer) Options() Options {
	return o.opts
}

// Observe starts watching ids.
func (o *Observer) Observe(ids ...string) {
	for _, id := range ids {
		o.watched[id] = true
	}
}

// Unobserve stops watching id.
func (o *Observer) Unobserve(id string) {
	delete(o.watched, id)
	delete(o.inside, id)
}

// Observing reports whether id is watched.
func (o *Observer) Observing(id string) bool {
	return o.watched[id]
}

// Len returns the number of watched elements.
func (o *Observer) Len() int {
	return len(o.watched)
}

// Check evaluates the watched elements among rects and returns, in rects
// order, the ids that entered the viewport since the previous check.
func (o *Observer) Check(v Viewport, rects []Rect) []string {
	var entered []string
	for _, r := range rects {
		if !o.watched[r.ID] {
			continue
		}
		in := Intersects(r, v, o.opts)
		if in && !o.inside[r.ID] {
			entered = append(entered, r.ID)
		}
		o.inside[r.ID] = in
	}
	return entered
}
