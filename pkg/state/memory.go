package state

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store.
// Suitable for single-node deployments and testing.
type MemoryStore struct {
	items     map[string]*memoryItem
	now       func() time.Time
	mu        sync.RWMutex
	closed    bool
	cleanupCh chan struct{}
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (it *memoryItem) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithNow sets the time source used for expiry.
func WithNow(now func() time.Time) MemoryOption {
	return func(ms *MemoryStore) {
		ms.now = now
	}
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	ms := &MemoryStore{
		items:     make(map[string]*memoryItem),
		now:       time.Now,
		cleanupCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}

	go ms.cleanupLoop()

	return ms
}

// Get retrieves a copy of a value.
func (ms *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return nil, ErrStoreClosed
	}

	item, ok := ms.items[key]
	if !ok || item.expired(ms.now()) {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), item.value...), nil
}

// Set stores a copy of value.
func (ms *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return ErrStoreClosed
	}

	item := &memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = ms.now().Add(ttl)
	}

	ms.items[key] = item
	return nil
}

// Delete removes a key.
func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return ErrStoreClosed
	}

	delete(ms.items, key)
	return nil
}

// Exists checks if a key exists.
func (ms *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return false, ErrStoreClosed
	}

	item, ok := ms.items[key]
	return ok && !item.expired(ms.now()), nil
}

// Keys returns live keys matching a glob pattern, sorted.
func (ms *MemoryStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return nil, ErrStoreClosed
	}

	now := ms.now()
	var keys []string
	for key, item := range ms.items {
		if item.expired(now) {
			continue
		}
		if matched, err := path.Match(pattern, key); err == nil && matched {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

// Close closes the store.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return nil
	}

	ms.closed = true
	close(ms.cleanupCh)

	return nil
}

func (ms *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.cleanup()
		case <-ms.cleanupCh:
			return
		}
	}
}

func (ms *MemoryStore) cleanup() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, item := range ms.items {
		if item.expired(now) {
			delete(ms.items, key)
		}
	}
}

// Len returns the number of items in the store.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}
