// Package protocol defines the wire protocol spoken between the page and the
// server.
package protocol

import (
	"time"
)

// MessageType classifies a message by its event name; see TypeOf.
type MessageType uint8

const (
	MsgJoin MessageType = iota
	MsgLeave
	MsgEvent // any page event: "scroll", "filter", "form:submit"...
	MsgReply
	MsgDiff
	MsgJS
	MsgError
	MsgHeartbeat
)

// Event names.
const (
	EventJoin      = "phx_join"
	EventLeave     = "phx_leave"
	EventReply     = "phx_reply"
	EventError     = "phx_error"
	EventHeartbeat = "heartbeat"
	EventDiff      = "diff"
	EventJS        = "js"
)

// Message is one frame in either direction. Ref correlates a reply with its
// request; JoinRef ties a frame to the join that opened the channel.
type Message struct {
	Type    MessageType    `json:"t" msgpack:"t"`
	Ref     string         `json:"ref,omitempty" msgpack:"ref,omitempty"`
	Topic   string         `json:"topic" msgpack:"topic"`
	Event   string         `json:"event,omitempty" msgpack:"event,omitempty"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
	JoinRef string         `json:"join_ref,omitempty" msgpack:"join_ref,omitempty"`

	// Timestamp is in Unix milliseconds.
	Timestamp int64 `json:"ts,omitempty" msgpack:"ts,omitempty"`
}

// NewMessage creates a message with an empty payload stamped with the
// current time.
func NewMessage(msgType MessageType, topic, event string) *Message {
	return &Message{
		Type:      msgType,
		Topic:     topic,
		Event:     event,
		Payload:   make(map[string]any),
		Timestamp: time.Now().UnixMilli(),
	}
}

func (m *Message) WithRef(ref string) *Message {
	m.Ref = ref
	return m
}

func (m *Message) WithPayload(payload map[string]any) *Message {
	m.Payload = payload
	return m
}

func (m *Message) WithJoinRef(joinRef string) *Message {
	m.JoinRef = joinRef
	return m
}

// GetPayloadString returns payload[key] when it is a string.
func (m *Message) GetPayloadString(key string) string {
	s, _ := m.Payload[key].(string)
	return s
}

// GetPayloadMap returns payload[key] when it is an object.
func (m *Message) GetPayloadMap(key string) map[string]any {
	v, _ := m.Payload[key].(map[string]any)
	return v
}

func (m *Message) IsHeartbeat() bool {
	return m.Type == MsgHeartbeat
}

// JoinMessage builds the client's channel join.
func JoinMessage(topic string, params map[string]any) *Message {
	return NewMessage(MsgJoin, topic, EventJoin).WithPayload(params)
}

// EventMessage builds a client page event.
func EventMessage(topic, event string, payload map[string]any) *Message {
	return NewMessage(MsgEvent, topic, event).WithPayload(payload)
}

// ReplyMessage answers the request ref with {status, response}.
func ReplyMessage(ref, topic string, status string, response map[string]any) *Message {
	return NewMessage(MsgReply, topic, EventReply).
		WithRef(ref).
		WithPayload(map[string]any{
			"status":   status,
			"response": response,
		})
}

func OkReply(ref, topic string, response map[string]any) *Message {
	return ReplyMessage(ref, topic, "ok", response)
}

// ErrorReply answers ref with status "error" and the reason in the response.
func ErrorReply(ref, topic string, reason string) *Message {
	return ReplyMessage(ref, topic, "error", map[string]any{"reason": reason})
}

// HeartbeatMessage builds the keepalive sent on the "phoenix" topic.
func HeartbeatMessage() *Message {
	return NewMessage(MsgHeartbeat, "phoenix", EventHeartbeat)
}
