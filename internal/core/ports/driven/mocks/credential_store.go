package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure MockCredentialStore implements CredentialStore
var _ driven.CredentialStore = (*MockCredentialStore)(nil)

// MockCredentialStore is a mock implementation of CredentialStore for testing
type MockCredentialStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Credential
	byEmail map[string]*domain.Credential

	// LastLoginCalls counts TouchLastLogin invocations per user id
	LastLoginCalls map[string]int

	// Errors to force from each method (nil for normal operation)
	FindErr  error
	TouchErr error
}

// NewMockCredentialStore creates a new MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		byID:           make(map[string]*domain.Credential),
		byEmail:        make(map[string]*domain.Credential),
		LastLoginCalls: make(map[string]int),
	}
}

// Add registers a credential for lookup by id and email
func (m *MockCredentialStore) Add(cred *domain.Credential) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[cred.ID] = cred
	m.byEmail[cred.Email] = cred
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	cred, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cred, nil
}

func (m *MockCredentialStore) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	cred, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cred, nil
}

func (m *MockCredentialStore) TouchLastLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TouchErr != nil {
		return m.TouchErr
	}
	m.LastLoginCalls[id]++
	if cred, ok := m.byID[id]; ok {
		now := time.Now()
		cred.LastLoginAt = &now
	}
	return nil
}

// Helper methods for testing

// LastLoginCount returns the number of TouchLastLogin calls for id
func (m *MockCredentialStore) LastLoginCount(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastLoginCalls[id]
}

func (m *MockCredentialStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID = make(map[string]*domain.Credential)
	m.byEmail = make(map[string]*domain.Credential)
	m.LastLoginCalls = make(map[string]int)
}
