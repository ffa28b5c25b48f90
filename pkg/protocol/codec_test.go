package protocol

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoenixCodec_Decode(t *testing.T) {
	codec := NewPhoenixCodec()

	msg, err := codec.Decode([]byte(`["1","2","lv:abc","filter",{"value":"web"}]`))
	require.NoError(t, err)
	assert.Equal(t, "1", msg.JoinRef)
	assert.Equal(t, "2", msg.Ref)
	assert.Equal(t, "lv:abc", msg.Topic)
	assert.Equal(t, MsgEvent, msg.Type)
	assert.Equal(t, "web", msg.GetPayloadString("value"))

	msg, err = codec.Decode([]byte(`[null,null,"phoenix","heartbeat",null]`))
	require.NoError(t, err)
	assert.True(t, msg.IsHeartbeat())
	assert.Empty(t, msg.Ref)
	assert.NotNil(t, msg.Payload)

	_, err = codec.Decode([]byte(`["1","2","t"]`))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestPhoenixCodec_NumericRefs(t *testing.T) {
	msg, err := NewPhoenixCodec().Decode([]byte(`[3,17,"lv:/","scroll",{"y":120}]`))
	require.NoError(t, err)
	assert.Equal(t, "3", msg.JoinRef)
	assert.Equal(t, "17", msg.Ref)
	assert.Equal(t, float64(120), msg.Payload["y"])
}

func TestPhoenixCodec_Encode(t *testing.T) {
	codec := NewPhoenixCodec()

	out, err := codec.Encode(OkReply("7", "lv:abc", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[null,"7","lv:abc","phx_reply",{"status":"ok","response":null}]`, string(out))
}

func TestJSONCodec_SetsType(t *testing.T) {
	codec := NewJSONCodec()
	msg, err := codec.Decode([]byte(`{"topic":"lv:x","event":"phx_join","payload":{}}`))
	require.NoError(t, err)
	assert.Equal(t, MsgJoin, msg.Type)
}

func TestMsgPackCodec(t *testing.T) {
	codec := NewMsgPackCodec()
	assert.True(t, IsBinary(codec))
	assert.False(t, IsBinary(NewPhoenixCodec()))

	in := EventMessage("lv:x", "nav:link", map[string]any{"href": "#about"})
	data, err := codec.Encode(in)
	require.NoError(t, err)

	out, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgEvent, out.Type)
	assert.Equal(t, "#about", out.GetPayloadString("href"))
}

func TestCodecRegistry(t *testing.T) {
	r := NewCodecRegistry()
	assert.Equal(t, CodecPhoenix, r.Default().Name())
	assert.Equal(t, CodecMsgPack, r.Resolve("msgpack").Name())
	assert.Equal(t, CodecPhoenix, r.Resolve("").Name())
	assert.Equal(t, CodecPhoenix, r.Resolve("xml").Name())

	assert.ErrorIs(t, r.SetDefault("xml"), ErrUnknownCodec)
	require.NoError(t, r.SetDefault(CodecJSON))
	assert.Equal(t, CodecJSON, r.Default().Name())
}

// FuzzPhoenixCodec checks that anything the codec accepts survives a
// re-encode.
func FuzzPhoenixCodec(f *testing.F) {
	f.Add([]byte(`[null,"1","topic","event",{}]`))
	f.Add([]byte(`["jr","1","topic","event",{"k":"v"}]`))
	f.Add([]byte(`[null,null,"t","e",null]`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`[1,2,3,4,5]`))
	f.Add([]byte(`{malformed`))

	codec := NewPhoenixCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}
		out, err := codec.Encode(msg)
		if err != nil {
			return
		}
		msg2, err := codec.Decode(out)
		if err != nil {
			t.Errorf("failed to decode encoded message: %v", err)
			return
		}
		if msg.Ref != msg2.Ref || msg.JoinRef != msg2.JoinRef || msg.Topic != msg2.Topic || msg.Event != msg2.Event {
			t.Errorf("roundtrip mismatch")
		}
		for k, v := range msg.Payload {
			if !reflect.DeepEqual(v, msg2.Payload[k]) {
				t.Errorf("payload %q mismatch", k)
			}
		}
	})
}
