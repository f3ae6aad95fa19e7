package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "sid-1", "token-1", time.Minute); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	token, ok, err := store.Read(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !ok || token != "token-1" {
		t.Fatalf("Read = (%q, %v), want (token-1, true)", token, ok)
	}
}

func TestMemoryStore_MissingSession(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Read(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if ok {
		t.Fatal("Read reported a session that was never saved")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "sid-1", "token-1", -time.Second); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	_, ok, err := store.Read(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if ok {
		t.Fatal("Read returned an expired session")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "sid-1", "token-1", time.Minute); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok, _ := store.Read(ctx, "sid-1"); ok {
		t.Fatal("Read found a cleared session")
	}

	// Clearing again must not fail.
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear of absent session returned error: %v", err)
	}
}

func TestNewSID_Unique(t *testing.T) {
	a, b := NewSID(), NewSID()
	if a == b {
		t.Fatalf("NewSID produced duplicate ids: %s", a)
	}
	if len(a) != 32 {
		t.Fatalf("NewSID length = %d, want 32", len(a))
	}
}
