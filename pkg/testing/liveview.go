// Package testing provides testing utilities for golivefolio components.
// It enables testing LiveView components without a browser or WebSocket
// connection, with a manual clock driving every deferred message.
package testing

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// Epoch is the manual clock's start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// LiveViewTest provides a testing harness for LiveView components.
type LiveViewTest struct {
	component core.Component
	transport *MockTransport
	socket    *core.Socket
	clock     *ManualClock
	params    core.Params
	session   core.Session
	rendered  string
	events    []core.Event
	seen      int
	t         *testing.T
}

// MountOption configures the test mount.
type MountOption func(*LiveViewTest)

// WithParams sets mount parameters.
func WithParams(params core.Params) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.params = params
	}
}

// WithSession sets session data.
func WithSession(session core.Session) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.session = session
	}
}

// Mount creates and mounts a component for testing.
// Messages the component schedules during Mount are delivered by Advance.
func Mount(t *testing.T, comp core.Component, opts ...MountOption) *LiveViewTest {
	t.Helper()

	lvt := &LiveViewTest{
		component: comp,
		transport: NewMockTransport(),
		clock:     NewManualClock(Epoch),
		params:    core.Params{},
		session:   core.Session{},
		t:         t,
	}
	for _, opt := range opts {
		opt(lvt)
	}

	lvt.socket = core.NewSocket(lvt.transport.ID, lvt.transport, core.WithClock(lvt.clock))
	if setter, ok := comp.(interface{ SetSocket(*core.Socket) }); ok {
		setter.SetSocket(lvt.socket)
	}

	if err := comp.Mount(lvt.ctx(), lvt.params, lvt.session); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	lvt.render()
	lvt.drain()
	return lvt
}

func (lvt *LiveViewTest) ctx() context.Context {
	return core.BuildContext(context.Background(), lvt.socket, lvt.session, lvt.params)
}

// Event sends a client event with the given payload.
func (lvt *LiveViewTest) Event(event string, payload map[string]any) *LiveViewTest {
	lvt.t.Helper()
	lvt.pushEvent(core.Event{Type: event, Payload: payload})
	return lvt
}

// Click simulates a click bound to event.
func (lvt *LiveViewTest) Click(event string, opts ...EventOption) *LiveViewTest {
	lvt.t.Helper()

	e := core.Event{Type: event, Target: "click"}
	for _, opt := range opts {
		opt(&e)
	}
	lvt.pushEvent(e)
	return lvt
}

// Submit simulates a form submission bound to event.
func (lvt *LiveViewTest) Submit(event string, data map[string]string) *LiveViewTest {
	lvt.t.Helper()

	payload := make(map[string]any, len(data))
	for k, v := range data {
		payload[k] = v
	}
	lvt.pushEvent(core.Event{Type: event, Target: "submit", Payload: payload})
	return lvt
}

// EventOption configures an event.
type EventOption func(*core.Event)

// WithPayload adds payload to the event.
func WithPayload(payload map[string]any) EventOption {
	return func(e *core.Event) {
		if e.Payload == nil {
			e.Payload = make(map[string]any)
		}
		for k, v := range payload {
			e.Payload[k] = v
		}
	}
}

// WithValue adds a value to the event payload.
func WithValue(key string, value any) EventOption {
	return func(e *core.Event) {
		if e.Payload == nil {
			e.Payload = make(map[string]any)
		}
		e.Payload[key] = value
	}
}

// pushEvent processes an event, re-renders and delivers queued messages.
func (lvt *LiveViewTest) pushEvent(event core.Event) {
	lvt.events = append(lvt.events, event)

	if err := lvt.component.HandleEvent(lvt.ctx(), event.Type, event.Payload); err != nil {
		lvt.t.Errorf("HandleEvent %s failed: %v", event.Type, err)
		return
	}

	lvt.render()
	lvt.drain()
}

// SendInfo sends an info message to the component.
func (lvt *LiveViewTest) SendInfo(msg any) *LiveViewTest {
	lvt.t.Helper()
	lvt.socket.SendInfo(msg)
	lvt.drain()
	return lvt
}

// Advance moves the clock forward by d. Each due timer is delivered to
// HandleInfo before later timers fire, so messages scheduled while handling
// one are honored within the same advance.
func (lvt *LiveViewTest) Advance(d time.Duration) *LiveViewTest {
	lvt.t.Helper()

	target := lvt.clock.Now().Add(d)
	for lvt.clock.FireNext(target) {
		lvt.drain()
	}
	lvt.clock.Set(target)
	lvt.drain()
	return lvt
}

// Elapsed returns the manual time since mount.
func (lvt *LiveViewTest) Elapsed() time.Duration {
	return lvt.clock.Now().Sub(Epoch)
}

func (lvt *LiveViewTest) drain() {
	for {
		msgs := lvt.socket.DrainInfo()
		if len(msgs) == 0 {
			return
		}
		for _, msg := range msgs {
			if err := lvt.component.HandleInfo(lvt.ctx(), msg); err != nil {
				lvt.t.Errorf("HandleInfo failed: %v", err)
			}
		}
		lvt.render()
	}
}

// render re-renders the component.
func (lvt *LiveViewTest) render() {
	ctx := lvt.ctx()
	renderer := lvt.component.Render(ctx)

	var buf bytes.Buffer
	if err := renderer.Render(ctx, &buf); err != nil {
		lvt.t.Fatalf("Render failed: %v", err)
	}

	lvt.rendered = buf.String()
}

// Rendered returns the current rendered HTML.
func (lvt *LiveViewTest) Rendered() string {
	return lvt.rendered
}

// Commands returns every DOM command pushed since mount.
func (lvt *LiveViewTest) Commands() js.Commands {
	return lvt.transport.Commands()
}

// TakeCommands returns the DOM commands pushed since the previous call.
func (lvt *LiveViewTest) TakeCommands() js.Commands {
	all := lvt.transport.Commands()
	if lvt.seen > len(all) {
		lvt.seen = 0
	}
	out := all[lvt.seen:]
	lvt.seen = len(all)
	return out
}

// AssertCommand verifies a command with op on target was pushed.
func (lvt *LiveViewTest) AssertCommand(op js.Op, target string) *LiveViewTest {
	lvt.t.Helper()

	if _, ok := lvt.Commands().Find(op, target); !ok {
		lvt.t.Errorf("Command %s(%s) not pushed; got %v", op, target, lvt.Commands())
	}
	return lvt
}

// AssertText verifies the rendered output contains text.
func (lvt *LiveViewTest) AssertText(text string) *LiveViewTest {
	lvt.t.Helper()

	if !strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text not found: %q\nRendered HTML:\n%s", text, lvt.rendered)
	}
	return lvt
}

// AssertNoText verifies the rendered output does not contain text.
func (lvt *LiveViewTest) AssertNoText(text string) *LiveViewTest {
	lvt.t.Helper()

	if strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text should not exist: %q", text)
	}
	return lvt
}

// AssertAssign verifies an assign value.
func (lvt *LiveViewTest) AssertAssign(key string, expected any) *LiveViewTest {
	lvt.t.Helper()

	var actual any
	if getter, ok := lvt.component.(interface{ Assigns() *core.Assigns }); ok {
		actual = getter.Assigns().Get(key)
	}

	if !reflect.DeepEqual(actual, expected) {
		lvt.t.Errorf("Assign %s mismatch:\n  Expected: %v (%T)\n  Actual:   %v (%T)",
			key, expected, expected, actual, actual)
	}
	return lvt
}

// Transport returns the mock transport.
func (lvt *LiveViewTest) Transport() *MockTransport {
	return lvt.transport
}

// Socket returns the socket bound to the component.
func (lvt *LiveViewTest) Socket() *core.Socket {
	return lvt.socket
}

// Clock returns the manual clock.
func (lvt *LiveViewTest) Clock() *ManualClock {
	return lvt.clock
}

// Component returns the component under test.
func (lvt *LiveViewTest) Component() core.Component {
	return lvt.component
}

// Events returns all events that were processed.
func (lvt *LiveViewTest) Events() []core.Event {
	return lvt.events
}
