package filter

import (
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards() []Card {
	return []Card{
		{ID: "project-a", Category: "web"},
		{ID: "project-b", Category: "ml"},
		{ID: "project-c", Category: "web"},
	}
}

// deliver runs every deferred message whose delay is at most until.
func deliver(t *testing.T, f *Filter, fx core.Effects, until time.Duration) js.Commands {
	t.Helper()
	var out js.Commands
	for _, d := range fx.Deferred {
		if d.Delay > until {
			continue
		}
		res, ok := f.HandleInfo(d.Msg)
		require.True(t, ok)
		out = append(out, res.Commands...)
	}
	return out
}

func TestSelect_All(t *testing.T) {
	f := New(cards())
	fx := f.Select(All)

	assert.Equal(t, js.RemoveClass(".filter-btn", "active"), fx.Commands[0])
	assert.Equal(t, js.AddClass(`.filter-btn[data-filter="all"]`, "active"), fx.Commands[1])

	require.Len(t, fx.Deferred, 3)
	for i, d := range fx.Deferred {
		assert.Equal(t, time.Duration(i)*Stagger, d.Delay)
	}

	deliver(t, f, fx, time.Second)
	assert.Equal(t, []string{"project-a", "project-b", "project-c"}, f.Visible())
	for _, c := range f.Cards() {
		assert.Equal(t, 1.0, c.Opacity)
		assert.Equal(t, 0, c.Offset)
		assert.Equal(t, Transition, c.Transition)
	}
}

func TestSelect_Category(t *testing.T) {
	f := New(cards())
	fx := f.Select("web")
	assert.Equal(t, "web", f.Active())

	disp, ok := fx.Commands.Find(js.OpSetStyle, "#project-b")
	require.True(t, ok)
	assert.Equal(t, "opacity", disp.Name)

	// b is still laid out until the hide delay passes
	deliver(t, f, fx, HideDelay-time.Millisecond)
	assert.Contains(t, f.Visible(), "project-b")

	cmds := deliver(t, f, fx, HideDelay)
	assert.Contains(t, cmds, js.SetStyle("#project-b", "display", "none"))
	assert.Equal(t, []string{"project-a", "project-c"}, f.Visible())

	// c is third in document order and fades in after 200ms
	var cDelay time.Duration
	for _, d := range fx.Deferred {
		if m, ok := d.Msg.(showCard); ok && m.index == 2 {
			cDelay = d.Delay
		}
	}
	assert.Equal(t, 200*time.Millisecond, cDelay)
}

func TestSelect_StaleTimersDropped(t *testing.T) {
	f := New(cards())
	first := f.Select("ml")
	second := f.Select(All)

	// the hide timers of the first selection fire after the second started
	stale := deliver(t, f, first, time.Second)
	assert.Empty(t, stale)
	assert.Len(t, f.Visible(), 3)

	deliver(t, f, second, time.Second)
	assert.Len(t, f.Visible(), 3)
}

func TestSelect_UnknownValueIgnored(t *testing.T) {
	f := New(cards())
	f.Select("web")

	for _, v := range []string{"games", `web"]`, ""} {
		assert.False(t, f.Known(v), v)
		assert.True(t, f.Select(v).IsEmpty(), v)
	}
	assert.Equal(t, "web", f.Active())
	assert.True(t, f.Known("ml"))
	assert.True(t, f.Known(All))
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	assert.True(t, f.Select("web").IsEmpty())
	assert.False(t, f.Known(All))
	assert.Equal(t, All, f.Active())
	_, ok := f.HandleInfo(hideCard{})
	assert.True(t, ok)
}
