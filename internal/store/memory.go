package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process SessionStore. It backs tests and throwaway
// runs where session state need not survive the process.
type MemoryStore struct {
	mu   sync.Mutex
	sess Session
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveSession(_ context.Context, token string, user []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{Token: token, User: append([]byte(nil), user...)}
	m.set = true
	return nil
}

func (m *MemoryStore) LoadSession(_ context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Session{}, nil
	}
	return Session{Token: m.sess.Token, User: append([]byte(nil), m.sess.User...)}, nil
}

func (m *MemoryStore) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{}
	m.set = false
	return nil
}

// Seed installs a session, bypassing SaveSession's copy-on-write for test
// setup convenience. A partial pair is allowed so restore paths can be
// exercised.
func (m *MemoryStore) Seed(token string, user []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{Token: token, User: user}
	m.set = true
}
