package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure MockRevocationList implements RevocationList
var _ driven.RevocationList = (*MockRevocationList)(nil)

// MockRevocationList is a mock implementation of RevocationList for testing.
// SetIfAbsent is atomic under the mutex, so it exercises the same
// exactly-one-winner semantics the Redis SETNX implementation provides.
type MockRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Duration

	// Errors to force from each method (nil for normal operation)
	SetErr    error
	ExistsErr error
}

// NewMockRevocationList creates a new MockRevocationList
func NewMockRevocationList() *MockRevocationList {
	return &MockRevocationList{
		revoked: make(map[string]time.Duration),
	}
}

func (m *MockRevocationList) SetIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return false, m.SetErr
	}
	if _, ok := m.revoked[tokenID]; ok {
		return false, nil
	}
	m.revoked[tokenID] = ttl
	return true, nil
}

func (m *MockRevocationList) Exists(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// Helper methods for testing

// TTL returns the TTL recorded for tokenID, or zero if not revoked
func (m *MockRevocationList) TTL(tokenID string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID]
}

func (m *MockRevocationList) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}

func (m *MockRevocationList) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked = make(map[string]time.Duration)
}
