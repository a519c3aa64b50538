package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Loader implements ports.TreeLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu    sync.RWMutex
	trees map[string][]byte
}

// NewLoader creates a new Loader with the provided raw definitions (YAML or JSON).
func NewLoader(data map[string]string) *Loader {
	trees := make(map[string][]byte, len(data))
	for k, v := range data {
		trees[k] = []byte(v)
	}
	return &Loader{trees: trees}
}

// NewFromTrees creates a Loader from domain definitions, serialized as JSON.
func NewFromTrees(trees map[string]domain.Node) (*Loader, error) {
	l := &Loader{trees: make(map[string][]byte, len(trees))}
	for name, root := range trees {
		if err := l.Put(name, root); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Put stores root under name, replacing any previous definition.
func (l *Loader) Put(name string, root domain.Node) error {
	if name == "" {
		return fmt.Errorf("tree missing name")
	}
	bytes, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal tree %s: %w", name, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trees[name] = bytes
	return nil
}

// GetTree retrieves the raw definition of a tree by name.
func (l *Loader) GetTree(name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	content, ok := l.trees[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, name)
	}
	return content, nil
}

// ListTrees returns all available tree names.
func (l *Loader) ListTrees() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.trees))
	for k := range l.trees {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
