package contact

import (
	"strings"
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Lifecycle(t *testing.T) {
	n := NewNotifier()
	tl := &timeline{h: n}

	tl.push(n.Show("Saved", KindSuccess))
	cmds := tl.take()
	require.Len(t, cmds, 2)
	assert.Equal(t, js.Remove(".notification"), cmds[0])
	assert.Equal(t, js.OpAppendHTML, cmds[1].Op)
	assert.Equal(t, "body", cmds[1].Target)

	b, _ := n.Current()
	assert.False(t, b.Visible)

	tl.runUntil(t, ShowDelay)
	assert.Equal(t, js.Commands{
		js.SetStyle("#"+b.ID, "opacity", "1"),
		js.SetStyle("#"+b.ID, "transform", "translateX(0)"),
	}, tl.take())
	b, _ = n.Current()
	assert.True(t, b.Visible)

	tl.runUntil(t, DismissDelay)
	assert.Equal(t, js.Commands{
		js.SetStyle("#"+b.ID, "opacity", "0"),
		js.SetStyle("#"+b.ID, "transform", "translateX(100%)"),
	}, tl.take())

	tl.runUntil(t, DismissDelay+RemoveDelay)
	assert.Equal(t, js.Commands{js.Remove("#" + b.ID)}, tl.take())
	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNotifier_ReplacedBannerTimersDropped(t *testing.T) {
	n := NewNotifier()
	tl := &timeline{h: n}

	tl.push(n.Show("first", KindError))
	first, _ := n.Current()

	tl.runUntil(t, time.Second)
	tl.push(n.Show("second", KindSuccess))
	second, _ := n.Current()
	assert.NotEqual(t, first.ID, second.ID)
	tl.take()

	// the first banner's dismissal at 5s must not touch the second
	tl.runUntil(t, DismissDelay+RemoveDelay)
	for _, c := range tl.take() {
		assert.NotEqual(t, "#"+first.ID, c.Target)
	}
	cur, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)
	assert.True(t, cur.Visible)
}

func TestMarkup(t *testing.T) {
	m := Markup(Banner{ID: "notification-1", Kind: KindError, Message: "a < b"})
	assert.True(t, strings.HasPrefix(m, `<div id="notification-1" class="notification notification--error"`))
	assert.Contains(t, m, "background: var(--color-error)")
	assert.Contains(t, m, "max-width: 300px")
	assert.Contains(t, m, "transform: translateX(100%)")
	assert.Contains(t, m, `<i class="fas fa-exclamation-circle"></i>`)
	assert.Contains(t, m, "<span>a &lt; b</span>")

	assert.Contains(t, Style(KindSuccess), "var(--color-success)")
	assert.Equal(t, "check-circle", KindSuccess.Icon())
}
