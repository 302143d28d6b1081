package auth

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.Authorized(ctx, 100)
	if err != nil {
		t.Fatalf("Authorized returned error: %v", err)
	}
	if ok {
		t.Fatalf("chat 100 authorized before Authorize")
	}

	if err := store.Authorize(ctx, 100, "mariana"); err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}

	ok, err = store.Authorized(ctx, 100)
	if err != nil {
		t.Fatalf("Authorized returned error: %v", err)
	}
	if !ok {
		t.Fatalf("chat 100 not authorized after Authorize")
	}

	// A different chat must stay unauthorized.
	ok, _ = store.Authorized(ctx, 200)
	if ok {
		t.Fatalf("chat 200 authorized without Authorize")
	}

	if err := store.Revoke(ctx, 100); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	ok, _ = store.Authorized(ctx, 100)
	if ok {
		t.Fatalf("chat 100 still authorized after Revoke")
	}
}

func TestMemoryStoreRevokeUnknownChat(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Revoke(context.Background(), 42); err != nil {
		t.Fatalf("Revoke of unknown chat returned error: %v", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = store.Authorize(ctx, id, "raphael")
			_, _ = store.Authorized(ctx, id)
			_ = store.Revoke(ctx, id)
		}(int64(i))
	}
	wg.Wait()
}
