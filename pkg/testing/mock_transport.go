package testing

import (
	"sync"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/google/uuid"
)

// MockTransport implements core.Transport for testing.
type MockTransport struct {
	ID        string
	Connected bool
	Sent      []core.Message
	Closed    bool

	mu sync.Mutex
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		ID:        "test-socket-" + uuid.New().String()[:8],
		Connected: true,
	}
}

// Send records a sent message.
func (mt *MockTransport) Send(msg core.Message) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.Closed {
		return core.ErrSocketClosed
	}

	mt.Sent = append(mt.Sent, msg)
	return nil
}

// Close marks the transport as closed.
func (mt *MockTransport) Close() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.Closed = true
	mt.Connected = false
	return nil
}

// IsConnected returns the connection status.
func (mt *MockTransport) IsConnected() bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.Connected && !mt.Closed
}

// Commands returns every DOM command pushed in "js" events, in order.
func (mt *MockTransport) Commands() js.Commands {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var out js.Commands
	for _, msg := range mt.Sent {
		if msg.Event != "js" {
			continue
		}
		if ops, ok := msg.Payload["ops"].([]js.Command); ok {
			out = append(out, ops...)
		}
	}
	return out
}
