/*
Package ports defines the driven ports (interfaces) for the bevtree engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to run user-supplied leaf logic and to load tree definitions from
various sources.

# Key Interfaces

  - Action: the Enter/Execute/Exit hook surface of a leaf.
  - TreeLoader: responsible for loading tree definitions (e.g., from files or memory).
  - Watchable: optional change notification for loaders that support hot reload.
*/
package ports
