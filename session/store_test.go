package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, "gs")
	return store, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func redisTestSession(delegate byte) *Session {
	return &Session{
		Delegate:       account(delegate),
		ExpiresAt:      time.UnixMilli(1700000000000).UTC(),
		ExpiresAtTick:  60,
		AllowedActions: []ActionTag{"move"},
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()
	owner := account(1)

	if _, found, err := store.Get(ctx, owner); err != nil || found {
		t.Fatalf("empty get: found=%v err=%v", found, err)
	}

	if err := store.Put(ctx, owner, redisTestSession(2)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, found, err := store.Get(ctx, owner)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Delegate != account(2) || got.ExpiresAtTick != 60 {
		t.Fatalf("decoded session mismatch: %+v", got)
	}
}

func TestRedisStoreOverwrite(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()
	owner := account(1)

	if err := store.Put(ctx, owner, redisTestSession(2)); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.Put(ctx, owner, redisTestSession(3)); err != nil {
		t.Fatalf("put second: %v", err)
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Session.Delegate != account(3) {
		t.Fatal("overwrite kept the old record")
	}
}

func TestRedisStoreDeleteIdempotent(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()
	owner := account(1)

	if err := store.Put(ctx, owner, redisTestSession(2)); err != nil {
		t.Fatalf("put: %v", err)
	}

	removed, err := store.Delete(ctx, owner)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = store.Delete(ctx, owner)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Fatal("second delete reported removal")
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("index not cleaned after delete: %d entries", len(entries))
	}
}

func TestRedisStoreAllPrunesOrphanIndexMembers(t *testing.T) {
	store, rdb, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Put(ctx, account(1), redisTestSession(2)); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Simulate an index member whose blob key vanished.
	if err := rdb.SAdd(ctx, store.indexKey(), account(9).String()).Err(); err != nil {
		t.Fatalf("sadd: %v", err)
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected orphan to be skipped, got %d entries", len(entries))
	}

	members, err := rdb.SMembers(ctx, store.indexKey()).Result()
	if err != nil {
		t.Fatalf("smembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("orphan not pruned from index: %v", members)
	}
}
