package services

import "sync"

// ViewGuard tracks a load generation per view key so a response from a
// superseded load can be discarded instead of overwriting fresher data.
type ViewGuard struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewViewGuard() *ViewGuard {
	return &ViewGuard{gens: make(map[string]uint64)}
}

// Begin registers a new load for the view key and returns its generation.
// Any earlier in-flight load for the same key becomes stale.
func (g *ViewGuard) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[key]++
	return g.gens[key]
}

// Current reports whether the given generation is still the latest load
// for the view key.
func (g *ViewGuard) Current(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[key] == gen
}
