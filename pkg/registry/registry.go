package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
	"github.com/aretw0/bevtree/pkg/precondition"
)

// ActionFactory builds a fresh action for one leaf.
// params are the leaf's "params" block from the tree definition.
type ActionFactory func(params map[string]any) (ports.Action, error)

// ConditionFunc is a host predicate referenced from definitions by name.
type ConditionFunc func(input any) bool

// Registry manages the actions and conditions a tree definition may reference.
type Registry struct {
	mu         sync.RWMutex
	actions    map[string]ActionFactory
	conditions map[string]ConditionFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions:    make(map[string]ActionFactory),
		conditions: make(map[string]ConditionFunc),
	}
}

// Register adds an action factory to the registry.
// If an action with the same name exists, it is overwritten.
// It panics if factory is nil.
func (r *Registry) Register(name string, factory ActionFactory) {
	if factory == nil {
		panic(fmt.Sprintf("registry: nil factory for action %q", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = factory
}

// RegisterCondition adds a named condition. It panics if fn is nil.
func (r *Registry) RegisterCondition(name string, fn ConditionFunc) {
	if fn == nil {
		panic(fmt.Sprintf("registry: nil function for condition %q", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = fn
}

// NewAction looks up an action by name and builds an instance with params.
func (r *Registry) NewAction(name string, params map[string]any) (ports.Action, error) {
	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, name)
	}

	action, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", name, err)
	}
	return action, nil
}

// Condition resolves a named condition. It satisfies precondition.Lookup.
func (r *Registry) Condition(name string) (precondition.Condition, bool) {
	r.mu.RLock()
	fn, ok := r.conditions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return precondition.Func(fn), true
}

// Actions returns the registered action names in sorted order.
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.actions)
}

// Conditions returns the registered condition names in sorted order.
func (r *Registry) Conditions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.conditions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
