package core

import "sync"

// Assigns holds per-connection values that outlive a single event, such as
// the client params a page was joined with.
type Assigns struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewAssigns creates an empty store.
func NewAssigns() *Assigns {
	return &Assigns{data: make(map[string]any)}
}

// Get returns the value stored under key, or nil.
func (a *Assigns) Get(key string) any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data[key]
}

// GetString returns the string under key, or "".
func (a *Assigns) GetString(key string) string {
	s, _ := a.Get(key).(string)
	return s
}

// Set stores value under key.
func (a *Assigns) Set(key string, value any) {
	a.mu.Lock()
	a.data[key] = value
	a.mu.Unlock()
}

// Len returns the number of stored keys.
func (a *Assigns) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data)
}
