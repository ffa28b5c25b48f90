package contact

import (
	"html"
	"strconv"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// Kind of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Icon returns the Font Awesome icon name.
func (k Kind) Icon() string {
	if k == KindSuccess {
		return "check-circle"
	}
	return "exclamation-circle"
}

// Background returns the banner background color.
func (k Kind) Background() string {
	if k == KindSuccess {
		return "var(--color-success)"
	}
	return "var(--color-error)"
}

// Banner timing.
const (
	ShowDelay    = 100 * time.Millisecond
	DismissDelay = 5000 * time.Millisecond
	RemoveDelay  = 300 * time.Millisecond
)

// BannerSelector matches every notification banner.
const BannerSelector = ".notification"

// Banner is the notification on screen.
type Banner struct {
	ID      string
	Kind    Kind
	Message string
	Visible bool
}

type (
	bannerIn     struct{ id string }
	bannerOut    struct{ id string }
	bannerRemove struct{ id string }
)

// Notifier keeps at most one banner on screen. Deferred steps of a replaced
// banner are dropped. A nil Notifier ignores every call.
type Notifier struct {
	seq     uint64
	current *Banner
}

// NewNotifier creates a notifier with no banner.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Current returns the banner on screen.
func (n *Notifier) Current() (Banner, bool) {
	if n == nil || n.current == nil {
		return Banner{}, false
	}
	return *n.current, true
}

// Show replaces any banner with a new one of kind.
func (n *Notifier) Show(message string, kind Kind) core.Effects {
	var fx core.Effects
	if n == nil {
		return fx
	}

	n.seq++
	b := &Banner{
		ID:      "notification-" + strconv.FormatUint(n.seq, 10),
		Kind:    kind,
		Message: message,
	}
	n.current = b

	fx.Do(
		js.Remove(BannerSelector),
		js.AppendHTML("body", Markup(*b)),
	)
	fx.After(ShowDelay, bannerIn{id: b.ID})
	fx.After(DismissDelay, bannerOut{id: b.ID})
	return fx
}

// HandleInfo advances the current banner through its slide in, slide out and
// removal.
func (n *Notifier) HandleInfo(msg any) (core.Effects, bool) {
	var fx core.Effects
	var id string
	switch m := msg.(type) {
	case bannerIn:
		id = m.id
	case bannerOut:
		id = m.id
	case bannerRemove:
		id = m.id
	default:
		return fx, false
	}
	if n == nil || n.current == nil || n.current.ID != id {
		return fx, true
	}

	sel := js.ID(id)
	switch msg.(type) {
	case bannerIn:
		n.current.Visible = true
		fx.Do(
			js.SetStyle(sel, "opacity", "1"),
			js.SetStyle(sel, "transform", "translateX(0)"),
		)
	case bannerOut:
		n.current.Visible = false
		fx.Do(
			js.SetStyle(sel, "opacity", "0"),
			js.SetStyle(sel, "transform", "translateX(100%)"),
		)
		fx.After(RemoveDelay, bannerRemove{id: id})
	case bannerRemove:
		n.current = nil
		fx.Do(js.Remove(sel))
	}
	return fx, true
}

// Style returns the inline style of a hidden banner of kind.
func Style(kind Kind) string {
	return "position: fixed; top: 20px; right: 20px; background: " + kind.Background() +
		"; color: white; padding: 16px 20px; border-radius: 8px;" +
		" box-shadow: 0 10px 25px rgba(0,0,0,0.1); z-index: 10000;" +
		" opacity: 0; transform: translateX(100%); transition: all 0.3s ease;" +
		" max-width: 300px; font-weight: 500;"
}

// Markup renders b as it is first inserted, hidden off screen.
func Markup(b Banner) string {
	return `<div id="` + b.ID + `" class="notification notification--` + string(b.Kind) +
		`" style="` + Style(b.Kind) + `">` +
		`<div class="notification-content" style="display: flex; align-items: center; gap: 10px;">` +
		`<i class="fas fa-` + b.Kind.Icon() + `"></i>` +
		`<span>` + html.EscapeString(b.Message) + `</span>` +
		`</div></div>`
}
