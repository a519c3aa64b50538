package registry

import (
	"encoding/json"
	"maps"
	"sync"
)

// Blackboard is a shared key/value payload for actions and conditions.
// It is safe for concurrent use and can be passed as the tick input.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewBlackboard creates a blackboard seeded with a copy of initial.
func NewBlackboard(initial map[string]any) *Blackboard {
	data := make(map[string]any, len(initial))
	maps.Copy(data, initial)
	return &Blackboard{data: data}
}

// Get returns the value stored under key.
func (b *Blackboard) Get(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// Set stores value under key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}

// Delete removes key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Snapshot returns a shallow copy of the contents.
// Conditions written as expressions are evaluated against it.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.data)
}

// MarshalJSON encodes the current snapshot.
func (b *Blackboard) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}
