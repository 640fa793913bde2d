package redis

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRevocationList_SetIfAbsent(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	list := NewRevocationList(client)
	ctx := context.Background()

	won, err := list.SetIfAbsent(ctx, "jti-abc", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !won {
		t.Error("expected first write to win")
	}

	won, err = list.SetIfAbsent(ctx, "jti-abc", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if won {
		t.Error("expected second write to lose")
	}
}

func TestRevocationList_Exists(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	list := NewRevocationList(client)
	ctx := context.Background()

	exists, err := list.Exists(ctx, "jti-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected unknown jti to not exist")
	}

	if _, err := list.SetIfAbsent(ctx, "jti-abc", time.Minute); err != nil {
		t.Fatal(err)
	}

	exists, err = list.Exists(ctx, "jti-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected revoked jti to exist")
	}
}

func TestRevocationList_EntriesExpireWithTheToken(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	list := NewRevocationList(client)
	ctx := context.Background()

	if _, err := list.SetIfAbsent(ctx, "jti-abc", time.Minute); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	exists, err := list.Exists(ctx, "jti-abc")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("expected entry to expire with the token lifetime")
	}

	// The id can be re-added once the old entry lapsed
	won, err := list.SetIfAbsent(ctx, "jti-abc", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !won {
		t.Error("expected write to win after expiry")
	}
}

func TestRevocationList_ConcurrentWritersSingleWinner(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	list := NewRevocationList(client)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	wins := make([]bool, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			won, err := list.SetIfAbsent(ctx, "jti-contested", time.Minute)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			wins[i] = won
		}(i)
	}
	wg.Wait()

	var winners int
	for _, won := range wins {
		if won {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly one winner, got %d", winners)
	}
}
