package router

import (
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/metrics"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
	"github.com/gabrielmiguelok/golivefolio/pkg/transport"
)

// TransportAdapter lets a core.Socket push through a transport.Transport.
type TransportAdapter struct {
	tr      transport.Transport
	metrics *metrics.Metrics
}

// NewTransportAdapter wraps tr. m may be nil.
func NewTransportAdapter(tr transport.Transport, m *metrics.Metrics) *TransportAdapter {
	return &TransportAdapter{tr: tr, metrics: m}
}

// Send converts msg to a protocol message and queues it.
func (a *TransportAdapter) Send(msg core.Message) error {
	out := &protocol.Message{
		Type:    protocol.TypeOf(msg.Event),
		Ref:     msg.Ref,
		Topic:   msg.Topic,
		Event:   msg.Event,
		Payload: msg.Payload,
	}
	if err := a.tr.Send(out); err != nil {
		a.metrics.RecordError("send")
		return err
	}
	a.metrics.MessageSent(msg.Event)
	return nil
}

// Close closes the transport.
func (a *TransportAdapter) Close() error {
	return a.tr.Close()
}

// IsConnected reports whether the transport is connected.
func (a *TransportAdapter) IsConnected() bool {
	return a.tr.IsConnected()
}

// Transport returns the wrapped transport.
func (a *TransportAdapter) Transport() transport.Transport {
	return a.tr
}
