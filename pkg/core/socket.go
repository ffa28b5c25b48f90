package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

// Common socket errors.
var (
	ErrSocketClosed = errors.New("socket is closed")
	ErrSendFailed   = errors.New("failed to send message")
)

// Socket represents a live connection to a client.
// Besides outbound messages it owns the component's mailbox: deferred
// messages scheduled with SendAfter land there and are drained by the
// connection loop, so component state is only ever touched by one goroutine.
type Socket struct {
	id string

	connected   bool
	connectedAt time.Time

	// lastActivity as atomic int64 (Unix nanoseconds) to avoid race conditions
	lastActivity atomic.Int64

	assigns   *Assigns
	transport Transport
	clock     Clock

	// mailbox
	inbox   []any
	notify  chan struct{}
	timers  map[uint64]*scheduled
	timerID uint64

	mu sync.RWMutex
}

// Transport is the interface for underlying connection transports.
type Transport interface {
	Send(msg Message) error
	Close() error
	IsConnected() bool
}

// Message represents a message sent over the socket.
type Message struct {
	Ref     string         `json:"ref,omitempty"`
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SocketOption configures a Socket.
type SocketOption func(*Socket)

// WithClock sets the clock used for deferred messages.
func WithClock(c Clock) SocketOption {
	return func(s *Socket) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewSocket creates a new socket with the given ID and transport.
func NewSocket(id string, transport Transport, opts ...SocketOption) *Socket {
	s := &Socket{
		id:        id,
		connected: true,
		assigns:   NewAssigns(),
		transport: transport,
		clock:     SystemClock(),
		notify:    make(chan struct{}, 1),
		timers:    make(map[uint64]*scheduled),
	}
	for _, opt := range opts {
		opt(s)
	}
	now := s.clock.Now()
	s.connectedAt = now
	s.lastActivity.Store(now.UnixNano())
	return s
}

// ID returns the socket's unique identifier.
func (s *Socket) ID() string {
	return s.id
}

// Clock returns the socket's clock.
func (s *Socket) Clock() Clock {
	return s.clock
}

// IsConnected returns true if the socket is connected.
func (s *Socket) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected && s.transport != nil && s.transport.IsConnected()
}

// ConnectedAt returns when the socket connected.
func (s *Socket) ConnectedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectedAt
}

// LastActivity returns the time of last activity.
func (s *Socket) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// UpdateActivity updates the last activity timestamp.
func (s *Socket) UpdateActivity() {
	s.lastActivity.Store(s.clock.Now().UnixNano())
}

// Assigns returns the socket's assigns store.
func (s *Socket) Assigns() *Assigns {
	return s.assigns
}

// Send sends a message to the client.
func (s *Socket) Send(msg Message) error {
	s.mu.RLock()
	connected := s.connected
	transport := s.transport
	s.mu.RUnlock()

	if !connected || transport == nil {
		return ErrSocketClosed
	}
	if !transport.IsConnected() {
		return ErrSocketClosed
	}

	s.UpdateActivity()

	if err := transport.Send(msg); err != nil {
		s.mu.RLock()
		stillConnected := s.connected
		s.mu.RUnlock()
		if !stillConnected {
			return ErrSocketClosed
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

// Push sends an event to the client.
func (s *Socket) Push(event string, payload map[string]any) error {
	return s.Send(Message{
		Topic:   "lv:" + s.id,
		Event:   event,
		Payload: payload,
	})
}

// PushCommands sends DOM commands to be executed by the client in order.
func (s *Socket) PushCommands(cmds js.Commands) error {
	if len(cmds) == 0 {
		return nil
	}
	return s.Push("js", cmds.Payload())
}

// DiffPayload is the diff format sent to clients.
// Text slots (s) replace textContent, HTML slots (h) replace innerHTML and
// Full (f) replaces the whole view.
type DiffPayload struct {
	Version   uint64            `json:"v"`
	Slots     map[string]string `json:"s,omitempty"`
	HTMLSlots map[string]string `json:"h,omitempty"`
	Full      string            `json:"f,omitempty"`
}

// IsEmpty returns true if the payload has no changes.
func (d *DiffPayload) IsEmpty() bool {
	return len(d.Slots) == 0 && len(d.HTMLSlots) == 0 && d.Full == ""
}

// Size returns the total size of the payload in bytes.
func (d *DiffPayload) Size() int {
	size := len(d.Full)
	for _, content := range d.Slots {
		size += len(content)
	}
	for _, content := range d.HTMLSlots {
		size += len(content)
	}
	return size
}

// SendOptimizedDiff sends a diff payload to the client.
func (s *Socket) SendOptimizedDiff(payload *DiffPayload) error {
	if payload == nil || payload.IsEmpty() {
		return nil
	}

	return s.Push("diff", map[string]any{
		"v": payload.Version,
		"s": payload.Slots,
		"h": payload.HTMLSlots,
		"f": payload.Full,
	})
}

// SendInfo queues msg in the socket's mailbox.
// Messages are kept in arrival order and never dropped while the socket is open.
func (s *Socket) SendInfo(msg any) {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}
	s.inbox = append(s.inbox, msg)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// SendAfter delivers msg to the mailbox after d.
func (s *Socket) SendAfter(d time.Duration, msg any) {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}
	s.timerID++
	id := s.timerID
	entry := &scheduled{}
	s.timers[id] = entry
	s.mu.Unlock()

	t := s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.SendInfo(msg)
	})

	s.mu.Lock()
	entry.timer = t
	s.mu.Unlock()
}

type scheduled struct {
	timer Timer
}

// Info returns a channel signalled whenever the mailbox becomes non-empty.
func (s *Socket) Info() <-chan struct{} {
	return s.notify
}

// DrainInfo removes and returns all queued messages.
func (s *Socket) DrainInfo() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.inbox
	s.inbox = nil
	return msgs
}

// PendingTimers returns the number of scheduled messages not yet delivered.
func (s *Socket) PendingTimers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.timers)
}

// Close stops pending timers and closes the transport.
func (s *Socket) Close() error {
	s.mu.Lock()
	s.connected = false
	transport := s.transport
	timers := s.timers
	s.timers = make(map[uint64]*scheduled)
	s.inbox = nil
	s.mu.Unlock()

	for _, e := range timers {
		if e.timer != nil {
			e.timer.Stop()
		}
	}

	if transport != nil {
		return transport.Close()
	}
	return nil
}

// SocketManager manages all active sockets.
type SocketManager struct {
	sockets    map[string]*Socket
	isShutdown bool
	mu         sync.RWMutex
}

// NewSocketManager creates a new socket manager.
func NewSocketManager() *SocketManager {
	return &SocketManager{
		sockets: make(map[string]*Socket),
	}
}

// Add registers a socket.
func (sm *SocketManager) Add(socket *Socket) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sockets[socket.ID()] = socket
}

// Remove unregisters a socket.
func (sm *SocketManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sockets, id)
}

// Get retrieves a socket by ID.
func (sm *SocketManager) Get(id string) (*Socket, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sockets[id]
	return s, ok
}

// Count returns the number of active sockets.
func (sm *SocketManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sockets)
}

// Shutdown closes every socket.
func (sm *SocketManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	if sm.isShutdown {
		sm.mu.Unlock()
		return nil
	}
	sm.isShutdown = true
	sockets := make([]*Socket, 0, len(sm.sockets))
	for _, s := range sm.sockets {
		sockets = append(sockets, s)
	}
	sm.mu.Unlock()

	for _, s := range sockets {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Close()
	}
	return nil
}

// IsShutdown returns true if the manager is shutting down.
func (sm *SocketManager) IsShutdown() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.isShutdown
}
