// Package state provides key/value storage for visitor preferences.
// It supports an in-memory backend (default) and a durable SQLite backend.
package state

import (
	"context"
	"errors"
	"time"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreClosed = errors.New("store is closed")
	ErrInvalidData = errors.New("invalid data format")
)

// Store is a byte-valued key/value backend safe for concurrent use. A zero
// TTL means the value never expires. Keys takes a glob such as "theme:*".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// Serializer converts records to and from their stored bytes.
type Serializer[T any] interface {
	Serialize(value T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// TypedStore stores T values in a Store through a Serializer.
type TypedStore[T any] struct {
	store Store
	codec Serializer[T]
}

func NewTypedStore[T any](store Store, codec Serializer[T]) *TypedStore[T] {
	return &TypedStore[T]{store: store, codec: codec}
}

// Get returns ErrKeyNotFound when key is absent and ErrInvalidData when the
// stored bytes do not decode.
func (ts *TypedStore[T]) Get(ctx context.Context, key string) (T, error) {
	data, err := ts.store.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return ts.codec.Deserialize(data)
}

func (ts *TypedStore[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := ts.codec.Serialize(value)
	if err != nil {
		return err
	}
	return ts.store.Set(ctx, key, data, ttl)
}

func (ts *TypedStore[T]) Delete(ctx context.Context, key string) error {
	return ts.store.Delete(ctx, key)
}

// Key joins a namespace and an owner id into a store key.
func Key(namespace, owner string) string {
	return namespace + ":" + owner
}
