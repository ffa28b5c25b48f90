// Package core provides the fundamental abstractions for golivefolio components.
package core

import (
	"context"
	"io"
)

// Component is a page served over a live connection. The router calls it from
// one goroutine per connection: Mount once on join, HandleEvent per client
// event, HandleInfo per deferred message, Render after each of those, and
// Terminate when the connection ends.
type Component interface {
	Name() string
	Mount(ctx context.Context, params Params, session Session) error
	Render(ctx context.Context) Renderer
	HandleEvent(ctx context.Context, event string, payload map[string]any) error
	HandleInfo(ctx context.Context, msg any) error
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer writes a component's HTML.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Params contains URL parameters and query strings from the connection.
type Params map[string]string

// Get returns a parameter value or empty string if not found.
func (p Params) Get(key string) string {
	return p[key]
}

// GetDefault returns a parameter value or the default if not found.
func (p Params) GetDefault(key, defaultValue string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return defaultValue
}

// Session contains user session data passed from the HTTP handler.
type Session map[string]any

// GetString returns a session value as string.
func (s Session) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// Cookie returns a request cookie captured into the session.
func (s Session) Cookie(name string) string {
	return s.GetString("cookie:" + name)
}

// TerminateReason indicates why a component is being terminated.
type TerminateReason int

const (
	// TerminateNormal: the client left or the connection dropped.
	TerminateNormal TerminateReason = iota
	// TerminateShutdown: the server is stopping.
	TerminateShutdown
	// TerminateTimeout: the session idled past its TTL.
	TerminateTimeout
)

var terminateNames = [...]string{"normal", "shutdown", "timeout"}

func (r TerminateReason) String() string {
	if r < 0 || int(r) >= len(terminateNames) {
		return "unknown"
	}
	return terminateNames[r]
}

// BaseComponent holds the socket and assigns of a component and no-op
// Component methods to embed.
type BaseComponent struct {
	socket  *Socket
	assigns *Assigns
}

// SetSocket is called by the router before Mount.
func (bc *BaseComponent) SetSocket(s *Socket) {
	bc.socket = s
}

// Socket returns the component's socket connection.
// It is nil during the initial HTTP render.
func (bc *BaseComponent) Socket() *Socket {
	return bc.socket
}

// Assigns returns the component's assigns store.
func (bc *BaseComponent) Assigns() *Assigns {
	if bc.assigns == nil {
		bc.assigns = NewAssigns()
	}
	return bc.assigns
}

// Apply pushes the client commands of fx and schedules its deferred messages.
// Without a socket (static render) effects are dropped.
func (bc *BaseComponent) Apply(fx Effects) error {
	if bc.socket == nil || fx.IsEmpty() {
		return nil
	}
	for _, d := range fx.Deferred {
		bc.socket.SendAfter(d.Delay, d.Msg)
	}
	if len(fx.Commands) == 0 {
		return nil
	}
	return bc.socket.PushCommands(fx.Commands)
}

func (bc *BaseComponent) Name() string {
	return ""
}

func (bc *BaseComponent) Mount(ctx context.Context, params Params, session Session) error {
	return nil
}

func (bc *BaseComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return nil
}

func (bc *BaseComponent) HandleInfo(ctx context.Context, msg any) error {
	return nil
}

func (bc *BaseComponent) Terminate(ctx context.Context, reason TerminateReason) error {
	return nil
}
