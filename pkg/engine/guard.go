package engine

import (
	"sync"
)

// Guard is the runtime-scoped set of claimed recurring markers. Its
// lifetime equals the process session: it starts empty, is seeded from
// in-memory and persisted task state, and is never persisted itself —
// after a restart the markers are rediscovered through seeding.
//
// A marker, once claimed, stays claimed for the rest of the session
// even if the corresponding create fails. Only a future process (with
// a fresh Guard) re-attempts materialization for that template and
// date.
type Guard struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{claimed: make(map[string]struct{})}
}

// Seed records markers already known from existing task state. Empty
// strings are ignored.
func (g *Guard) Seed(markers []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range markers {
		if m == "" {
			continue
		}
		g.claimed[m] = struct{}{}
	}
}

// Has reports whether the marker has been claimed this session.
func (g *Guard) Has(marker string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.claimed[marker]
	return ok
}

// Claim inserts the marker, returning true if it was newly claimed.
// The insert is idempotent; a second claim returns false. Callers must
// claim before issuing the asynchronous create so an overlapping pass
// observes the marker and does not double-create.
func (g *Guard) Claim(marker string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.claimed[marker]; ok {
		return false
	}
	g.claimed[marker] = struct{}{}
	return true
}

// Len returns the number of claimed markers.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.claimed)
}
