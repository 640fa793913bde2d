package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RevocationList = (*RevocationList)(nil)

const revokedPrefix = "auth:revoked:"

// RevocationList implements driven.RevocationList using Redis SETNX with
// TTL. SETNX is the atomicity that makes refresh rotation race-safe: of any
// number of concurrent writers for one token id, exactly one observes true.
// Entries expire with the token they revoke, keeping the set bounded.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a new Redis-backed RevocationList
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// SetIfAbsent atomically marks tokenID revoked for ttl. Returns whether this
// call created the entry.
func (r *RevocationList) SetIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	won, err := r.client.SetNX(ctx, revokedPrefix+tokenID, "1", ttl).Result()
	if err != nil {
		return false, domain.Infrastructure("revocation set", err)
	}
	return won, nil
}

// Exists reports whether tokenID is on the revocation list
func (r *RevocationList) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, domain.Infrastructure("revocation check", err)
	}
	return n > 0, nil
}
