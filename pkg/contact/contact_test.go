package contact

import (
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handler interface {
	HandleInfo(msg any) (core.Effects, bool)
}

// timeline replays deferred messages in time order without a socket.
type timeline struct {
	h       handler
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

// take returns and forgets the commands collected so far.
func (tl *timeline) take() js.Commands {
	out := tl.cmds
	tl.cmds = nil
	return out
}

func (tl *timeline) runUntil(t *testing.T, until time.Duration) {
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

		fx, ok := tl.h.HandleInfo(msg)
		require.True(t, ok)
		tl.push(fx)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		err   error
	}{
		{"valid", Draft{Name: "A", Email: "a@b.c", Message: "hi"}, nil},
		{"blank name", Draft{Name: "  ", Email: "a@b.c", Message: "hi"}, ErrMissingFields},
		{"blank message", Draft{Name: "A", Email: "a@b.c"}, ErrMissingFields},
		{"blank wins over bad email", Draft{Name: "A", Email: "nope"}, ErrMissingFields},
		{"no tld", Draft{Name: "A", Email: "a@b", Message: "hi"}, ErrInvalidEmail},
		{"inner space", Draft{Name: "A", Email: "a b@c.d", Message: "hi"}, ErrInvalidEmail},
		{"two ats", Draft{Name: "A", Email: "a@b@c.d", Message: "hi"}, ErrInvalidEmail},
		{"surrounding space trimmed", Draft{Name: "A", Email: " a@b.c ", Message: "hi"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.draft)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ada@example.com"))
	assert.True(t, ValidEmail("a.b+c@mail.example.org"))
	assert.False(t, ValidEmail("ada@example"))
	assert.False(t, ValidEmail("ada example@x.io"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidate_Trims(t *testing.T) {
	d, err := Validate(Draft{Name: " Ada ", Email: "\ta@b.c\n", Message: " hi "})
	require.NoError(t, err)
	assert.Equal(t, Draft{Name: "Ada", Email: "a@b.c", Message: "hi"}, d)
}

func TestFocusBlur(t *testing.T) {
	c := New(nil, nil)

	fx := c.Focus(Email)
	assert.Equal(t, js.Commands{js.AddClass("#email-group", "focused")}, fx.Commands)
	assert.True(t, c.Focused(Email))

	// a filled field keeps its marker after blur
	assert.True(t, c.Blur(Email, "a@b.c").IsEmpty())
	assert.True(t, c.Focused(Email))

	fx = c.Blur(Email, "")
	assert.Equal(t, js.Commands{js.RemoveClass("#email-group", "focused")}, fx.Commands)
	assert.False(t, c.Focused(Email))

	assert.True(t, c.Focus("password").IsEmpty())
}

func TestInput(t *testing.T) {
	c := New(nil, nil)
	fx := c.Input(Name, "Ada")
	assert.Equal(t, js.Commands{js.SetAttr("#name", "value", "Ada")}, fx.Commands)
	assert.Equal(t, "Ada", c.Draft().Name)
}

func TestSubmit_MissingFields(t *testing.T) {
	c := New(nil, nil)
	tl := &timeline{h: c}

	tl.push(c.Submit(Draft{Name: "A", Email: "", Message: "hi"}))
	assert.False(t, c.Sending())

	b, ok := c.Notifier().Current()
	require.True(t, ok)
	assert.Equal(t, KindError, b.Kind)
	assert.Equal(t, "Please fill in all fields.", b.Message)

	tl.runUntil(t, time.Minute)
	assert.Equal(t, 0, c.Submitted())
	assert.Empty(t, tl.cmds.Filter(js.OpResetForm))
}

func TestSubmit_Success(t *testing.T) {
	c := New(nil, nil)
	tl := &timeline{h: c}

	c.Focus(Name)
	c.Input(Name, "A")
	tl.push(c.Submit(Draft{Name: "A", Email: "a@b.c", Message: "hi"}))

	cmds := tl.take()
	assert.Equal(t, js.Commands{
		js.SetHTML("#contact-submit", SendingHTML),
		js.SetProp("#contact-submit", "disabled", "true"),
	}, cmds)
	assert.True(t, c.Sending())

	// submits while sending are ignored
	assert.True(t, c.Submit(Draft{Name: "B", Email: "b@c.d", Message: "x"}).IsEmpty())

	tl.runUntil(t, SendDelay-time.Millisecond)
	assert.Empty(t, tl.take())
	_, shown := c.Notifier().Current()
	assert.False(t, shown)

	tl.runUntil(t, SendDelay)
	cmds = tl.take()
	assert.Contains(t, cmds, js.ResetForm("#contact-form"))
	reset := lo.IndexOf(cmds, js.ResetForm("#contact-form"))
	for _, f := range Fields {
		blank := lo.IndexOf(cmds, js.SetAttr("#"+f, "value", ""))
		require.GreaterOrEqual(t, blank, 0, f)
		assert.Less(t, blank, reset, "%s is blanked before reset", f)
	}
	assert.Contains(t, cmds, js.RemoveClass(".form-group", "focused"))
	assert.Contains(t, cmds, js.SetHTML("#contact-submit", SubmitHTML))
	assert.Contains(t, cmds, js.SetProp("#contact-submit", "disabled", "false"))

	b, ok := c.Notifier().Current()
	require.True(t, ok)
	assert.Equal(t, KindSuccess, b.Kind)
	assert.Equal(t, SuccessMessage, b.Message)

	assert.False(t, c.Sending())
	assert.Equal(t, 1, c.Submitted())
	assert.Equal(t, Draft{}, c.Draft())
	assert.False(t, c.Focused(Name))
}

func TestNilController(t *testing.T) {
	var c *Controller
	assert.True(t, c.Focus(Name).IsEmpty())
	assert.True(t, c.Submit(Draft{Name: "A", Email: "a@b.c", Message: "hi"}).IsEmpty())
	_, ok := c.HandleInfo(sent{})
	assert.True(t, ok)
	_, ok = c.HandleInfo(bannerIn{})
	assert.True(t, ok)
	_, ok = c.HandleInfo("other")
	assert.False(t, ok)
}
