package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
)

// setupTestRedis creates a miniredis instance and a client against it
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testSession(userID string) *domain.Session {
	now := time.Now().Truncate(time.Second)
	return &domain.Session{
		UserID:         userID,
		LoginAt:        now,
		ClientIP:       "192.168.1.1",
		UserAgent:      "Mozilla/5.0",
		LastActivityAt: now,
	}
}

func TestSessionStore_SetGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	key := domain.SessionKey("user-1", "jti-abc")
	session := testSession("user-1")

	if err := store.Set(ctx, key, session, time.Hour); err != nil {
		t.Fatalf("unexpected error saving session: %v", err)
	}

	retrieved, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to retrieve saved session: %v", err)
	}

	if retrieved.UserID != session.UserID {
		t.Errorf("expected UserID %s, got %s", session.UserID, retrieved.UserID)
	}
	if retrieved.ClientIP != session.ClientIP {
		t.Errorf("expected ClientIP %s, got %s", session.ClientIP, retrieved.ClientIP)
	}
	if !retrieved.LoginAt.Equal(session.LoginAt) {
		t.Errorf("expected LoginAt %v, got %v", session.LoginAt, retrieved.LoginAt)
	}
}

func TestSessionStore_Set_NonPositiveTTL(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	// A session whose token already expired is not stored
	if err := store.Set(ctx, "user-1:jti-old", testSession("user-1"), -time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "user-1:jti-old"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_Get_Absent(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "user-1:no-such-jti")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	key := domain.SessionKey("user-1", "jti-abc")
	if err := store.Set(ctx, key, testSession("user-1"), time.Minute); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, key); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after TTL expiry, got %v", err)
	}
}

func TestSessionStore_Touch(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	key := domain.SessionKey("user-1", "jti-abc")
	session := testSession("user-1")
	session.LastActivityAt = time.Now().Add(-time.Hour)

	if err := store.Set(ctx, key, session, time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := store.Touch(ctx, key); err != nil {
		t.Fatalf("unexpected error touching session: %v", err)
	}

	retrieved, err := store.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !retrieved.LastActivityAt.After(session.LastActivityAt) {
		t.Error("expected last-activity timestamp to advance")
	}

	// Touch must not reset the absolute expiry
	if ttl := mr.TTL(sessionPrefix + key); ttl > time.Minute {
		t.Errorf("expected TTL preserved at <= 1m, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, key); err != domain.ErrNotFound {
		t.Errorf("expected session to expire on schedule despite touch, got %v", err)
	}
}

func TestSessionStore_Touch_Absent(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	if err := store.Touch(context.Background(), "user-1:no-such-jti"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	key := domain.SessionKey("user-1", "jti-abc")
	if err := store.Set(ctx, key, testSession("user-1"), time.Hour); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, key); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is not an error
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}
