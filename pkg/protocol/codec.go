package protocol

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec names.
const (
	CodecJSON    = "json"
	CodecMsgPack = "msgpack"
	CodecPhoenix = "phoenix"
)

// Common codec errors.
var (
	ErrInvalidMessage = errors.New("invalid message format")
	ErrUnknownCodec   = errors.New("unknown codec type")
)

// Codec turns messages into WebSocket frames and back. Name is the value the
// client passes in the "codec" query parameter.
type Codec interface {
	Encode(msg *Message) ([]byte, error)
	Decode(data []byte) (*Message, error)
	Name() string
	ContentType() string
}

// JSONCodec implements Codec using JSON objects.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Encode encodes a message to JSON.
func (c *JSONCodec) Encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode decodes JSON to a message.
func (c *JSONCodec) Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	msg.Type = TypeOf(msg.Event)
	return &msg, nil
}

// Name returns "json".
func (c *JSONCodec) Name() string {
	return CodecJSON
}

// ContentType returns the JSON MIME type.
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// MsgPackCodec implements Codec using MessagePack encoding. Frames are sent
// as binary WebSocket messages.
type MsgPackCodec struct{}

// NewMsgPackCodec creates a new MsgPack codec.
func NewMsgPackCodec() *MsgPackCodec {
	return &MsgPackCodec{}
}

// Encode encodes a message to MsgPack.
func (c *MsgPackCodec) Encode(msg *Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}

// Decode decodes MsgPack to a message.
func (c *MsgPackCodec) Decode(data []byte) (*Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	msg.Type = TypeOf(msg.Event)
	return &msg, nil
}

// Name returns "msgpack".
func (c *MsgPackCodec) Name() string {
	return CodecMsgPack
}

// ContentType returns the MsgPack MIME type.
func (c *MsgPackCodec) ContentType() string {
	return "application/msgpack"
}

// PhoenixCodec implements the Phoenix Framework wire format.
// Format: [join_ref, ref, topic, event, payload]
type PhoenixCodec struct{}

// NewPhoenixCodec creates a new Phoenix-compatible codec.
func NewPhoenixCodec() *PhoenixCodec {
	return &PhoenixCodec{}
}

// Encode writes [join_ref, ref, topic, event, payload]; empty refs become null.
func (c *PhoenixCodec) Encode(msg *Message) ([]byte, error) {
	tuple := []any{
		nullable(msg.JoinRef),
		nullable(msg.Ref),
		msg.Topic,
		msg.Event,
		msg.Payload,
	}
	return json.Marshal(tuple)
}

// Decode reads a five-element array. A null or missing payload decodes as
// an empty map; refs may be strings, numbers or null.
func (c *PhoenixCodec) Decode(data []byte) (*Message, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return nil, err
	}
	if len(tuple) != 5 {
		return nil, ErrInvalidMessage
	}

	msg := &Message{JoinRef: decodeRef(tuple[0]), Ref: decodeRef(tuple[1])}
	if err := json.Unmarshal(tuple[2], &msg.Topic); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tuple[3], &msg.Event); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tuple[4], &msg.Payload); err != nil || msg.Payload == nil {
		msg.Payload = make(map[string]any)
	}
	msg.Type = TypeOf(msg.Event)
	return msg, nil
}

func decodeRef(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// Name returns "phoenix".
func (c *PhoenixCodec) Name() string {
	return CodecPhoenix
}

// ContentType returns the JSON MIME type.
func (c *PhoenixCodec) ContentType() string {
	return "application/json"
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsBinary reports whether c produces binary frames.
func IsBinary(c Codec) bool {
	return c.ContentType() == "application/msgpack"
}

// TypeOf returns the message type of an event name.
func TypeOf(event string) MessageType {
	switch event {
	case EventJoin:
		return MsgJoin
	case EventLeave:
		return MsgLeave
	case EventReply:
		return MsgReply
	case EventError:
		return MsgError
	case EventHeartbeat:
		return MsgHeartbeat
	case EventDiff:
		return MsgDiff
	case EventJS:
		return MsgJS
	default:
		return MsgEvent
	}
}

// CodecRegistry manages available codecs.
type CodecRegistry struct {
	codecs   map[string]Codec
	fallback Codec
	mu       sync.RWMutex
}

// NewCodecRegistry creates a registry holding the JSON, MsgPack and Phoenix
// codecs, with Phoenix as the default.
func NewCodecRegistry() *CodecRegistry {
	r := &CodecRegistry{
		codecs: make(map[string]Codec),
	}
	r.Register(NewJSONCodec())
	r.Register(NewMsgPackCodec())
	r.Register(NewPhoenixCodec())
	r.fallback = r.codecs[CodecPhoenix]
	return r
}

// Register adds a codec to the registry.
func (r *CodecRegistry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[codec.Name()] = codec
}

// Get retrieves a codec by name.
func (r *CodecRegistry) Get(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}

// Default returns the default codec.
func (r *CodecRegistry) Default() Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Resolve returns the codec called name, or the default when name is empty
// or unknown.
func (r *CodecRegistry) Resolve(name string) Codec {
	if c, ok := r.Get(name); ok {
		return c
	}
	return r.Default()
}

// SetDefault sets the default codec.
func (r *CodecRegistry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codecs[name]
	if !ok {
		return ErrUnknownCodec
	}
	r.fallback = c
	return nil
}
