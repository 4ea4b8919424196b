package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store used by embedders that host the
// whole engine inside one program, and by tests. Safe for concurrent
// use, although the engine itself serializes all mutation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[AccountID]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[AccountID]*Session)}
}

// Get looks up the session stored for account.
func (m *MemoryStore) Get(_ context.Context, account AccountID) (*Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[account]
	if !ok {
		return nil, false, nil
	}
	return s.clone(), true, nil
}

// Put overwrite-inserts the session for account.
func (m *MemoryStore) Put(_ context.Context, account AccountID, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[account] = s.clone()
	return nil
}

// Delete removes the session for account, reporting whether one existed.
func (m *MemoryStore) Delete(_ context.Context, account AccountID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[account]
	delete(m.sessions, account)
	return ok, nil
}

// All snapshots every stored entry in unspecified order.
func (m *MemoryStore) All(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.sessions))
	for account, s := range m.sessions {
		entries = append(entries, Entry{Account: account, Session: *s.clone()})
	}
	return entries, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
