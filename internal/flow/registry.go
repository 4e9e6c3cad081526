package flow

import (
	"sync"
	"time"
)

// View is the part of a form view the registry needs.
type View interface {
	Close()
	Closed() bool
}

type registryEntry[V View] struct {
	view     V
	lastUsed time.Time
}

// Registry keeps the live view of each browser session. Replacing or
// removing a view closes it, which discards any response still in flight.
type Registry[V View] struct {
	mu      sync.Mutex
	entries map[string]*registryEntry[V]
}

func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[key]
	if !ok || entry.view.Closed() {
		var zero V
		return zero, false
	}
	entry.lastUsed = time.Now()
	return entry.view, true
}

func (r *Registry[V]) Replace(key string, view V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.entries[key]; ok {
		old.view.Close()
	}
	r.entries[key] = &registryEntry[V]{view: view, lastUsed: time.Now()}
}

func (r *Registry[V]) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[key]; ok {
		entry.view.Close()
		delete(r.entries, key)
	}
}

// Sweep closes and drops views idle for longer than maxIdle. It returns the
// number of views removed.
func (r *Registry[V]) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	deadline := time.Now().Add(-maxIdle)
	for key, entry := range r.entries {
		if entry.view.Closed() || entry.lastUsed.Before(deadline) {
			entry.view.Close()
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

func (r *Registry[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func NewRegistry[V View]() *Registry[V] {
	return &Registry[V]{entries: make(map[string]*registryEntry[V])}
}
