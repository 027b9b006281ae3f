// ABOUTME: SessionStore manages bounded conversation state per chat session
// ABOUTME: One in-flight question per session, queued via a per-session lock
package core

import (
	"sync"

	"medassist/internal/models"
)

// SessionStore holds all live sessions in memory. Sessions are scoped by
// an opaque ID passed explicitly on every call; nothing survives restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	maxTurns int
}

// sessionEntry pairs a session with its serialization lock. The lock is
// held for the duration of one question so a second question arriving
// mid-answer queues instead of interleaving the history.
type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

// NewSessionStore creates a store bounding each session to maxTurns
func NewSessionStore(maxTurns int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		maxTurns: maxTurns,
	}
}

// WithSession runs fn with exclusive access to the session, creating it on
// first use. Concurrent calls for the same session run one at a time.
func (st *SessionStore) WithSession(sessionID string, fn func(*models.Session) error) error {
	entry := st.entry(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Snapshot returns a copy of the session's turns, or nil for an unknown session
func (st *SessionStore) Snapshot(sessionID string) []models.ConversationTurn {
	st.mu.RLock()
	entry, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	turns := make([]models.ConversationTurn, len(entry.session.Turns))
	copy(turns, entry.session.Turns)
	return turns
}

// Reset discards a session's history. Resetting an unknown session is a no-op.
func (st *SessionStore) Reset(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

// ResetAll discards every session
func (st *SessionStore) ResetAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions = make(map[string]*sessionEntry)
}

// entry returns the session entry, creating it on first interaction
func (st *SessionStore) entry(sessionID string) *sessionEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	if entry, ok := st.sessions[sessionID]; ok {
		return entry
	}
	entry := &sessionEntry{
		session: &models.Session{
			SessionID: sessionID,
			MaxTurns:  st.maxTurns,
		},
	}
	st.sessions[sessionID] = entry
	return entry
}
