package state

import (
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackV1 prefixes every record written by MsgPack.
const msgpackV1 byte = 1

// MsgPack stores values as MessagePack behind a one-byte format version.
type MsgPack[T any] struct{}

// NewMsgPack returns a MessagePack serializer for T.
func NewMsgPack[T any]() MsgPack[T] { return MsgPack[T]{} }

// Serialize implements Serializer.
func (MsgPack[T]) Serialize(value T) ([]byte, error) {
	enc, err := msgpack.Marshal(value)
	if err != nil {
		return nil, err
	}
	return append([]byte{msgpackV1}, enc...), nil
}

// Deserialize implements Serializer. Records with an unknown version are
// rejected with ErrInvalidData.
func (MsgPack[T]) Deserialize(data []byte) (T, error) {
	var value T
	if len(data) == 0 || data[0] != msgpackV1 {
		return value, ErrInvalidData
	}
	err := msgpack.Unmarshal(data[1:], &value)
	return value, err
}
