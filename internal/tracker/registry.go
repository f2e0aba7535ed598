package tracker

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Registry owns the engine instances, one per canonicalized project root.
// The request-handling layers construct a single Registry and resolve every
// incoming working directory through it, so "./proj" and its absolute form
// bind to the same engine.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
}

func NewRegistry() *Registry {
	return &Registry{trackers: make(map[string]*Tracker)}
}

// Get returns the Tracker for root, creating it on first reference.
func (r *Registry) Get(root string) (*Tracker, error) {
	key, err := canonical(root)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.trackers[key]; ok {
		return t, nil
	}
	t := New(key)
	r.trackers[key] = t
	return t, nil
}

// Evict drops the cached engine for root, if any.
func (r *Registry) Evict(root string) {
	key, err := canonical(root)
	if err != nil {
		return
	}
	r.mu.Lock()
	delete(r.trackers, key)
	r.mu.Unlock()
}

// Len reports the number of cached engines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

func canonical(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("project root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	return filepath.Clean(abs), nil
}
