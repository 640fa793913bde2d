package driven

import (
	"context"
	"time"
)

// RevocationList is a TTL-bounded set of revoked token ids (Redis).
// Entries expire with the token they revoke, so the set never grows
// unbounded.
type RevocationList interface {
	// SetIfAbsent atomically adds tokenID with the given TTL. Returns true
	// if this call added the entry, false if it was already present. The
	// atomicity is what makes concurrent refresh rotation safe: exactly one
	// caller wins.
	SetIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)

	// Exists reports whether tokenID is revoked
	Exists(ctx context.Context, tokenID string) (bool, error)
}
