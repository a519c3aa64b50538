package dsl

import (
	"fmt"

	"github.com/aretw0/bevtree/pkg/adapters/memory"
	"github.com/aretw0/bevtree/pkg/domain"
)

// Builder collects named trees.
type Builder struct {
	trees map[string]*NodeBuilder
	order []string
}

// New creates a new tree set builder.
func New() *Builder {
	return &Builder{
		trees: make(map[string]*NodeBuilder),
	}
}

// Add registers root under name. Adding the same name again replaces the tree.
func (b *Builder) Add(name string, root *NodeBuilder) *Builder {
	if _, ok := b.trees[name]; !ok {
		b.order = append(b.order, name)
	}
	b.trees[name] = root
	return b
}

// Names returns the tree names in the order they were first added.
func (b *Builder) Names() []string {
	return append([]string(nil), b.order...)
}

// Build compiles the trees into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	trees := make(map[string]domain.Node, len(b.trees))
	for name, nb := range b.trees {
		trees[name] = nb.Build()
	}

	loader, err := memory.NewFromTrees(trees)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
