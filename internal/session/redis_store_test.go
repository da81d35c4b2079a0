package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb), mr
}

func testSession(id string) Session {
	now := time.Now()
	return Session{
		SessionID: id,
		UserID:    "user-1",
		Username:  "sue",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("sid-1")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.UserID != "user-1" || got.Username != "sue" {
		t.Fatalf("unexpected session contents: %+v", got)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown session, got %+v", got)
	}
}

func TestDeleteDestroysSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("sid-2")); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := store.Delete(ctx, "sid-2"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	got, err := store.Get(ctx, "sid-2")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatal("expected destroyed session to be gone")
	}
}

func TestCreateRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	s := testSession("sid-3")
	s.ExpiresAt = time.Now().Add(-time.Minute)

	if err := store.Create(context.Background(), s); err == nil {
		t.Fatal("expected Create to reject an already-expired session")
	}
}

func TestSessionExpiresWithTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	s := testSession("sid-4")
	s.ExpiresAt = time.Now().Add(time.Minute)

	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sid-4")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatal("expected session to expire with its redis TTL")
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id generated: %s", id)
		}
		seen[id] = true
	}
}
