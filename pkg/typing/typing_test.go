package typing

import (
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeline replays deferred messages in time order without a socket.
type timeline struct {
	now     time.Duration
	pending []core.Deferred
	due     []time.Duration
	cmds    js.Commands
}

func (tl *timeline) push(fx core.Effects) {
	tl.cmds = append(tl.cmds, fx.Commands...)
	for _, d := range fx.Deferred {
		tl.pending = append(tl.pending, d)
		tl.due = append(tl.due, tl.now+d.Delay)
	}
}

func (tl *timeline) runUntil(t *testing.T, a *Animator, until time.Duration) {
	t.Helper()
	for {
		next := -1
		for i, at := range tl.due {
			if at <= until && (next < 0 || at < tl.due[next]) {
				next = i
			}
		}
		if next < 0 {
			tl.now = until
			return
		}
		tl.now = tl.due[next]
		msg := tl.pending[next].Msg
		tl.pending = append(tl.pending[:next], tl.pending[next+1:]...)
		tl.due = append(tl.due[:next], tl.due[next+1:]...)

		fx, ok := a.HandleInfo(msg)
		require.True(t, ok)
		tl.push(fx)
	}
}

func TestAnimator_Timeline(t *testing.T) {
	const name = "Dev Charan Sai P"
	a := New(name)
	tl := &timeline{}

	tl.push(a.Start())
	assert.Equal(t, js.SetText("#typing-text", ""), tl.cmds[0])
	assert.Equal(t, Pending, a.State())

	tl.runUntil(t, a, StartDelay-time.Millisecond)
	assert.Equal(t, Pending, a.State())

	start := StartDelay
	tl.runUntil(t, a, start+100*time.Millisecond)
	assert.Equal(t, "D", a.Typed())
	assert.Equal(t, Typing, a.State())

	tl.runUntil(t, a, start+1600*time.Millisecond)
	assert.Equal(t, name, a.Typed())
	assert.Equal(t, Typing, a.State())

	tl.runUntil(t, a, start+1700*time.Millisecond)
	assert.Equal(t, Done, a.State())

	tl.runUntil(t, a, start+3700*time.Millisecond-time.Millisecond)
	assert.Equal(t, Done, a.State())
	assert.Empty(t, tl.cmds.Filter(js.OpSetStyle))

	tl.runUntil(t, a, start+3700*time.Millisecond)
	assert.Equal(t, Finished, a.State())
	caret := tl.cmds.Filter(js.OpSetStyle)
	require.Len(t, caret, 1)
	assert.Equal(t, "border-right", caret[0].Name)
	assert.Equal(t, "none", caret[0].Value)

	tl.runUntil(t, a, time.Hour)
	assert.Empty(t, tl.pending)
	assert.Len(t, tl.cmds.Filter(js.OpSetText), 17)
}

func TestAnimator_RunesAndRestart(t *testing.T) {
	a := New("héllo")
	tl := &timeline{}
	tl.push(a.Start())
	tl.runUntil(t, a, StartDelay+300*time.Millisecond)
	assert.Equal(t, "hél", a.Typed())

	assert.True(t, a.Start().IsEmpty())
}

func TestAnimator_Nil(t *testing.T) {
	var a *Animator
	assert.True(t, a.Start().IsEmpty())
	_, ok := a.HandleInfo(tick{})
	assert.True(t, ok)
	_, ok = a.HandleInfo("other")
	assert.False(t, ok)
}
