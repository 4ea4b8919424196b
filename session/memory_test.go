package session

import (
	"context"
	"testing"
	"time"
)

func account(b byte) AccountID {
	var id AccountID
	id[0] = b
	return id
}

func TestMemoryStoreSingleEntryPerAccount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := account(1)

	first := &Session{Delegate: account(2), ExpiresAtTick: 10, AllowedActions: []ActionTag{"a"}}
	second := &Session{Delegate: account(3), ExpiresAtTick: 20, AllowedActions: []ActionTag{"b"}}

	if err := store.Put(ctx, owner, first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.Put(ctx, owner, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry after overwrite, got %d", len(entries))
	}
	if entries[0].Session.Delegate != account(3) {
		t.Fatal("overwrite did not replace the whole record")
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := account(1)

	if err := store.Put(ctx, owner, &Session{
		Delegate:       account(2),
		ExpiresAt:      time.Now(),
		ExpiresAtTick:  5,
		AllowedActions: []ActionTag{"a", "b"},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := store.Get(ctx, owner)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	got.AllowedActions[0] = "mutated"

	again, _, err := store.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.AllowedActions[0] != "a" {
		t.Fatal("stored session shares state with returned copy")
	}
}

func TestMemoryStoreDeleteReportsExistence(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := account(1)

	removed, err := store.Delete(ctx, owner)
	if err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if removed {
		t.Fatal("delete of absent entry reported removal")
	}

	if err := store.Put(ctx, owner, &Session{Delegate: account(2), AllowedActions: []ActionTag{"a"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	removed, err = store.Delete(ctx, owner)
	if err != nil {
		t.Fatalf("delete present: %v", err)
	}
	if !removed {
		t.Fatal("delete of present entry reported nothing removed")
	}
	if _, found, _ := store.Get(ctx, owner); found {
		t.Fatal("entry still present after delete")
	}
}
