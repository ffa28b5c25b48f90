package router

import (
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/transport"
	"github.com/google/uuid"
)

// LiveViewSession binds a mounted component to its live connection.
// Its state is owned by the connection's message loop.
type LiveViewSession struct {
	// ID uniquely identifies the session.
	ID string

	// SocketID is the ID of the associated socket.
	SocketID string

	Component core.Component
	Socket    *core.Socket
	Transport transport.Transport

	// Params hold the URL query merged with the join params.
	Params core.Params

	// Session holds request data captured at upgrade time.
	Session core.Session

	// Topic is the channel topic announced by the client's join.
	Topic string

	CreatedAt time.Time

	// Version orders diffs on the client.
	Version uint64

	joinRef      string
	joined       bool
	expired      bool
	slotHashes   map[string]uint64
	lastActivity time.Time
	closeOnce    sync.Once

	mu sync.RWMutex
}

// NewLiveViewSession creates a session for a freshly upgraded connection.
func NewLiveViewSession(socketID string, comp core.Component, params core.Params, session core.Session) *LiveViewSession {
	now := time.Now()
	return &LiveViewSession{
		ID:           uuid.NewString(),
		SocketID:     socketID,
		Component:    comp,
		Params:       params,
		Session:      session,
		Topic:        "lv:" + socketID,
		CreatedAt:    now,
		lastActivity: now,
	}
}

// UpdateActivity records client activity.
func (s *LiveViewSession) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// LastActivity returns the time of the last client message.
func (s *LiveViewSession) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// expire marks the session as closed for inactivity.
func (s *LiveViewSession) expire() {
	s.mu.Lock()
	s.expired = true
	s.mu.Unlock()
}

// Expired reports whether the session was closed for inactivity.
func (s *LiveViewSession) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

// Joined reports whether the client has joined the channel.
func (s *LiveViewSession) Joined() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joined
}

func (s *LiveViewSession) setJoined(topic, joinRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined = true
	s.joinRef = joinRef
	if topic != "" {
		s.Topic = topic
	}
}

// JoinRef returns the reference of the client's join message.
func (s *LiveViewSession) JoinRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinRef
}

// SlotHashes returns the hashes of the slots last sent to the client.
func (s *LiveViewSession) SlotHashes() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotHashes
}

// SetSlotHashes replaces the slot hashes.
func (s *LiveViewSession) SetSlotHashes(hashes map[string]uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotHashes = hashes
}

func (s *LiveViewSession) nextVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Version++
	return s.Version
}

// SessionManager tracks active live sessions.
type SessionManager struct {
	sessions map[string]*LiveViewSession
	// maxSessions is the session limit (0 = unlimited).
	maxSessions int
	sessionTTL  time.Duration

	mu sync.RWMutex
}

// SessionManagerConfig configures the session manager.
type SessionManagerConfig struct {
	MaxSessions int
	SessionTTL  time.Duration
}

// DefaultSessionManagerConfig returns the default configuration.
func DefaultSessionManagerConfig() SessionManagerConfig {
	return SessionManagerConfig{
		MaxSessions: 10000,
		SessionTTL:  30 * time.Minute,
	}
}

// NewSessionManager creates a session manager.
func NewSessionManager(config SessionManagerConfig) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*LiveViewSession),
		maxSessions: config.MaxSessions,
		sessionTTL:  config.SessionTTL,
	}
}

// Add registers s. When the limit is reached the least recently active
// session is evicted and returned so the caller can close it.
func (m *SessionManager) Add(s *LiveViewSession) (evicted *LiveViewSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		evicted = m.evictOldestLocked()
	}
	m.sessions[s.ID] = s
	return evicted
}

// Get returns a session by ID.
func (m *SessionManager) Get(sessionID string) (*LiveViewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Remove unregisters a session.
func (m *SessionManager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		delete(m.sessions, sessionID)
	}
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Idle returns the sessions inactive for longer than the TTL.
func (m *SessionManager) Idle(now time.Time) []*LiveViewSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var idle []*LiveViewSession
	for _, s := range m.sessions {
		if now.Sub(s.LastActivity()) > m.sessionTTL {
			idle = append(idle, s)
		}
	}
	return idle
}

func (m *SessionManager) evictOldestLocked() *LiveViewSession {
	var oldest *LiveViewSession
	for _, s := range m.sessions {
		if oldest == nil || s.LastActivity().Before(oldest.LastActivity()) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.ID)
	}
	return oldest
}
