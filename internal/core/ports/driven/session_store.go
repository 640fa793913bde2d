package driven

import (
	"context"
	"time"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
)

// SessionStore handles session persistence (Redis).
// Keys follow domain.SessionKey: "{userId}:{accessJti}".
type SessionStore interface {
	// Set stores a session under key with the given TTL
	Set(ctx context.Context, key string, session *domain.Session, ttl time.Duration) error

	// Get retrieves a session; domain.ErrNotFound when absent or expired
	Get(ctx context.Context, key string) (*domain.Session, error)

	// Touch updates the session's last-activity timestamp without resetting
	// its absolute expiry. domain.ErrNotFound when absent.
	Touch(ctx context.Context, key string) error

	// Delete removes a session. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
