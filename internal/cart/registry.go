package cart

import (
	"context"
	"sync"
	"time"

	"github.com/wadidirect/storefront-backend/pkg/logger"
)

type registryEntry struct {
	store    *Store
	lastSeen time.Time
}

// Registry keeps one cart store per session id. Carts live in memory only and
// are dropped after the configured idle TTL.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry builds a registry whose carts expire after the given idle TTL.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: map[string]*registryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cart store for the session, creating an empty one on first
// access and refreshing the idle timer.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &registryEntry{store: NewStore()}
		r.entries[sessionID] = entry
	}
	entry.lastSeen = r.now()
	return entry.store
}

// Len reports how many session carts are currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops carts idle for longer than the TTL and returns how many were
// removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired carts on the given interval until the context ends.
func (r *Registry) Run(ctx context.Context, interval time.Duration, logg *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 && logg != nil {
				logg.Info(logg.WithField(ctx, "removed", removed), "cart.sessions.swept")
			}
		}
	}
}
