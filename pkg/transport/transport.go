// Package transport carries protocol messages between the page and the
// server over WebSocket.
package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
)

// Common transport errors.
var (
	ErrNotConnected     = errors.New("transport not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendTimeout      = errors.New("send timeout")
	ErrTransportFull    = errors.New("transport buffer full")
)

// Transport is a bidirectional message stream to one client.
type Transport interface {
	// Send queues a message for the client.
	Send(msg *protocol.Message) error

	// Receive returns a channel for incoming messages.
	Receive() <-chan *protocol.Message

	// CloseChan is closed once the transport shuts down.
	CloseChan() <-chan struct{}

	Close() error
	IsConnected() bool
}

// Config holds transport settings.
type Config struct {
	// ReadTimeout bounds the wait for the next client frame; clients are
	// expected to heartbeat more often.
	ReadTimeout time.Duration

	WriteTimeout time.Duration

	// PingInterval is how often to send WebSocket pings.
	PingInterval time.Duration

	MaxMessageSize int64

	SendBufferSize    int
	ReceiveBufferSize int

	// AllowedOrigins for cross-origin upgrades. Same-origin is always allowed.
	AllowedOrigins []string

	// InsecureDevMode disables origin checks (ONLY for development!).
	InsecureDevMode bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		MaxMessageSize:    64 * 1024,
		SendBufferSize:    256,
		ReceiveBufferSize: 256,
	}
}

// ConfigFrom derives transport settings from the live connection config.
func ConfigFrom(c core.Config) Config {
	cfg := DefaultConfig()
	if c.Timeouts.WebSocketRead > 0 {
		cfg.ReadTimeout = c.Timeouts.WebSocketRead
	}
	if c.Timeouts.WebSocketWrite > 0 {
		cfg.WriteTimeout = c.Timeouts.WebSocketWrite
	}
	if c.MaxMessageSize > 0 {
		cfg.MaxMessageSize = c.MaxMessageSize
	}
	cfg.AllowedOrigins = c.Security.AllowedOrigins
	cfg.InsecureDevMode = c.Security.InsecureDevMode
	return cfg
}

// BaseTransport provides the channels and connection flag shared by
// transports.
type BaseTransport struct {
	config    Config
	connected bool
	sendCh    chan *protocol.Message
	recvCh    chan *protocol.Message
	closeCh   chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
}

// NewBaseTransport creates a new base transport.
func NewBaseTransport(config Config) *BaseTransport {
	return &BaseTransport{
		config:  config,
		sendCh:  make(chan *protocol.Message, config.SendBufferSize),
		recvCh:  make(chan *protocol.Message, config.ReceiveBufferSize),
		closeCh: make(chan struct{}),
	}
}

// Config returns the transport configuration.
func (t *BaseTransport) Config() Config {
	return t.config
}

// IsConnected returns the connection status.
func (t *BaseTransport) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connected
}

// SetConnected updates the connection status.
func (t *BaseTransport) SetConnected(connected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = connected
}

// Receive returns the receive channel.
func (t *BaseTransport) Receive() <-chan *protocol.Message {
	return t.recvCh
}

// CloseChan returns the close channel.
func (t *BaseTransport) CloseChan() <-chan struct{} {
	return t.closeCh
}

// Close marks the transport closed. It is safe to call more than once.
func (t *BaseTransport) Close() error {
	t.closeOnce.Do(func() {
		t.SetConnected(false)
		close(t.closeCh)
	})
	return nil
}

// PushMessage delivers an inbound message without blocking.
func (t *BaseTransport) PushMessage(msg *protocol.Message) error {
	select {
	case <-t.closeCh:
		return ErrConnectionClosed
	default:
	}
	select {
	case t.recvCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrConnectionClosed
	default:
		return ErrTransportFull
	}
}
