package ports

import "context"

// TreeLoader defines how the engine retrieves tree definitions.
// This allows the storage layer (files, memory) to be decoupled.
type TreeLoader interface {
	// GetTree retrieves the raw definition of a tree by name.
	// It returns the raw bytes (which the compiler will parse) or an error.
	GetTree(name string) ([]byte, error)

	// ListTrees returns the names of all trees available from the source.
	// This is used for introspection tools (e.g. 'bevtree validate').
	ListTrees() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload in 'bevtree serve --watch'.
type Watchable interface {
	// Watch returns a channel that is signaled with the tree name when a definition changes.
	Watch(ctx context.Context) (<-chan string, error)
}
