/*
Package domain contains the core domain models of the bevtree engine.

It defines the vocabulary shared by the runtime, the compiler and the adapters.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - RunningStatus: the tri-state result of a Tick (Executing, Finish, ErrorTransition).
  - TerminalStatus: the private Ready/Running/Finish lifecycle of a leaf.
  - Node: the declarative definition of a tree (what gets compiled).
  - Condition: the declarative form of a precondition expression.
  - LifecycleHooks: synchronous observability callbacks.
*/
package domain
