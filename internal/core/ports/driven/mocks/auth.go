package mocks

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure mocks implement their ports
var (
	_ driven.PasswordHasher = (*MockPasswordHasher)(nil)
	_ driven.TokenCodec     = (*MockTokenCodec)(nil)
)

// MockPasswordHasher compares passwords in plain text.
// NOT secure - only for testing.
type MockPasswordHasher struct{}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return password, nil
}

func (m *MockPasswordHasher) Verify(password, hash string) bool {
	return password == hash
}

// MockTokenCodec encodes claims as base64 JSON instead of signing them.
// It stamps real jti/iat/exp values so TTL-dependent service logic behaves
// as it would with the JWT codec. NOT secure - only for testing.
type MockTokenCodec struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now allows tests to control the clock; defaults to time.Now
	Now func() time.Time
}

// NewMockTokenCodec creates a MockTokenCodec with short default TTLs
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        time.Now,
	}
}

func (m *MockTokenCodec) IssueAccess(cred *domain.Credential) (string, *domain.TokenClaims, error) {
	now := m.Now()
	claims := &domain.TokenClaims{
		UserID:      cred.ID,
		Email:       cred.Email,
		RoleID:      cred.Role.ID,
		Permissions: cred.Role.Permissions,
		TokenType:   domain.TokenTypeAccess,
		TokenID:     uuid.NewString(),
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(m.AccessTTL).Unix(),
	}
	return m.encode(claims)
}

func (m *MockTokenCodec) IssueRefresh(cred *domain.Credential) (string, *domain.TokenClaims, error) {
	now := m.Now()
	claims := &domain.TokenClaims{
		UserID:    cred.ID,
		TokenType: domain.TokenTypeRefresh,
		TokenID:   uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.RefreshTTL).Unix(),
	}
	return m.encode(claims)
}

func (m *MockTokenCodec) Verify(token string) (*domain.TokenClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}

	if m.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &claims, nil
}

func (m *MockTokenCodec) encode(claims *domain.TokenClaims) (string, *domain.TokenClaims, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", nil, err
	}
	return base64.StdEncoding.EncodeToString(data), claims, nil
}
