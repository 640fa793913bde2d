package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure MockSessionStore implements SessionStore
var _ driven.SessionStore = (*MockSessionStore)(nil)

// MockSessionStore is a mock implementation of SessionStore for testing.
// TTLs are recorded but not enforced; tests delete entries explicitly.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttls     map[string]time.Duration

	// Errors to force from each method (nil for normal operation)
	SetErr    error
	GetErr    error
	TouchErr  error
	DeleteErr error
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]*domain.Session),
		ttls:     make(map[string]time.Duration),
	}
}

func (m *MockSessionStore) Set(ctx context.Context, key string, session *domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.sessions[key] = session
	m.ttls[key] = ttl
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	session, ok := m.sessions[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (m *MockSessionStore) Touch(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TouchErr != nil {
		return m.TouchErr
	}
	session, ok := m.sessions[key]
	if !ok {
		return domain.ErrNotFound
	}
	session.LastActivityAt = time.Now()
	return nil
}

func (m *MockSessionStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.sessions, key)
	delete(m.ttls, key)
	return nil
}

// Helper methods for testing

// Has reports whether a session exists under key
func (m *MockSessionStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[key]
	return ok
}

// TTL returns the TTL recorded for key at Set time
func (m *MockSessionStore) TTL(key string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ttls[key]
}

func (m *MockSessionStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MockSessionStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*domain.Session)
	m.ttls = make(map[string]time.Duration)
}
