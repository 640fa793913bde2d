package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

// Key prefix for Redis
const sessionPrefix = "auth:session:"

// SessionStore implements driven.SessionStore using Redis.
// Sessions use Redis TTL for automatic expiration; keys are the service's
// "{userId}:{accessJti}" form under the auth:session: prefix.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Set stores a session as JSON with the given TTL
func (s *SessionStore) Set(ctx context.Context, key string, session *domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		// Session already expired, don't save
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return domain.Infrastructure("session encode", err)
	}

	if err := s.client.Set(ctx, sessionPrefix+key, data, ttl).Err(); err != nil {
		return domain.Infrastructure("session set", err)
	}
	return nil
}

// Get retrieves a session by key
func (s *SessionStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.Infrastructure("session get", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, domain.Infrastructure("session decode", err)
	}
	return &session, nil
}

// Touch updates the session's last-activity timestamp in place. The write
// uses SET XX with KEEPTTL: the absolute expiry set at login is preserved,
// and a key that expired between read and write is not resurrected.
func (s *SessionStore) Touch(ctx context.Context, key string) error {
	session, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	session.LastActivityAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return domain.Infrastructure("session encode", err)
	}

	if err := s.client.SetXX(ctx, sessionPrefix+key, data, redis.KeepTTL).Err(); err != nil {
		return domain.Infrastructure("session touch", err)
	}
	return nil
}

// Delete removes a session. Deleting an absent key is not an error.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionPrefix+key).Err(); err != nil {
		return domain.Infrastructure("session delete", err)
	}
	return nil
}
