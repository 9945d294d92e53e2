package cart

import (
	"testing"
	"time"
)

func TestRegistryIsolatesSessions(t *testing.T) {
	registry := NewRegistry(time.Hour)

	a := registry.Get("session-a")
	b := registry.Get("session-b")
	a.Add(Item{ID: "p-1", Name: "Water", Price: 5}, 1)

	if b.Snapshot().ItemCount != 0 {
		t.Fatal("cart contents leaked across sessions")
	}
	if registry.Get("session-a") != a {
		t.Fatal("expected the same store on repeat access")
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", registry.Len())
	}
}

func TestRegistrySweepDropsIdleCarts(t *testing.T) {
	registry := NewRegistry(time.Minute)
	current := time.Now()
	registry.now = func() time.Time { return current }

	registry.Get("stale")
	current = current.Add(2 * time.Minute)
	registry.Get("fresh")

	if removed := registry.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept cart, got %d", removed)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", registry.Len())
	}

	// The surviving cart is the recently touched one.
	registry.Get("fresh").Add(Item{ID: "p-1", Name: "Water", Price: 2}, 1)
	if registry.Len() != 1 {
		t.Fatalf("expected fresh session retained, got %d", registry.Len())
	}
}
