package bevtree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/aretw0/bevtree/internal/compiler"
	"github.com/aretw0/bevtree/internal/runtime"
	"github.com/aretw0/bevtree/internal/validator"
	"github.com/aretw0/bevtree/pkg/adapters/file"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
	"github.com/aretw0/bevtree/pkg/registry"
	"github.com/google/uuid"
)

// Tree is the arena holding the runtime nodes of a compiled tree.
type Tree = runtime.Tree

// NodeID is a handle to a node inside a Tree.
type NodeID = runtime.NodeID

// NoNode is the handle of "no node".
const NoNode = runtime.NoNode

// Engine is the high-level entry point for the bevtree library.
// It loads a definition, compiles it and drives the root through Evaluate/Tick.
// Methods are safe for concurrent use; the tree underneath is only touched under the engine lock.
type Engine struct {
	mu sync.Mutex

	loader     ports.TreeLoader
	registry   *registry.Registry
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	treeName   string
	definition *domain.Node

	tree  *runtime.Tree
	root  runtime.NodeID
	runID string
	steps int

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom TreeLoader, bypassing the default directory loader.
func WithLoader(l ports.TreeLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithDefinition compiles def directly; no loader is consulted.
func WithDefinition(def domain.Node) Option {
	return func(e *Engine) {
		e.definition = &def
	}
}

// WithRegistry sets the actions and conditions available to the definition.
// The default registry holds the built-in actions only.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTreeName selects which tree of the loader to run.
// When omitted, the loader must hold exactly one tree.
func WithTreeName(name string) Option {
	return func(e *Engine) {
		e.treeName = name
	}
}

// New initializes a new bevtree Engine.
// By default, trees are read from the directory dir.
// If WithLoader or WithDefinition is provided, dir is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{root: runtime.NoNode}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.registry == nil {
		eng.registry = registry.NewDefault(eng.logger)
	}
	if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.definition == nil && eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no loader or definition is provided")
		}
		eng.loader = file.New(dir, file.WithLogger(eng.logger))
	}

	def, err := eng.resolveDefinition()
	if err != nil {
		return nil, err
	}
	if err := eng.install(def); err != nil {
		return nil, err
	}
	return eng, nil
}

// resolveDefinition returns the definition to compile, loading and parsing it when needed.
func (e *Engine) resolveDefinition() (*domain.Node, error) {
	if e.definition != nil {
		def := *e.definition
		if e.Name == "" {
			e.Name = def.DisplayName()
		}
		return &def, nil
	}

	if e.treeName == "" {
		names, err := e.loader.ListTrees()
		if err != nil {
			return nil, err
		}
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: pick one of %v with WithTreeName", domain.ErrTreeNotFound, names)
		}
		e.treeName = names[0]
	}
	e.Name = e.treeName

	raw, err := e.loader.GetTree(e.treeName)
	if err != nil {
		return nil, err
	}
	def, err := compiler.NewParser().Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", e.treeName, err)
	}
	return def, nil
}

// install validates and compiles def, replacing the current tree.
func (e *Engine) install(def *domain.Node) error {
	v := validator.New(validator.WithKnownActions(e.registry.Actions()))
	if err := v.Validate(def); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := e.logger.With("tree", e.Name, "run_id", runID)
	tree := runtime.NewTree(
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
	root, err := compiler.New(e.registry, logger).Compile(tree, def)
	if err != nil {
		return err
	}

	e.tree = tree
	e.root = root
	e.runID = runID
	e.steps = 0
	e.definition = def
	logger.Debug("tree compiled", "nodes", tree.Len())
	return nil
}

// Reload re-reads the definition from the loader and swaps in the new tree.
// The running branch of the old tree is transitioned first so every Enter gets its Exit.
// On error the current tree is kept.
func (e *Engine) Reload(input any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loader == nil {
		return fmt.Errorf("engine has no loader to reload from")
	}
	saved := e.definition
	e.definition = nil
	def, err := e.resolveDefinition()
	if err != nil {
		e.definition = saved
		return err
	}

	old, oldRoot := e.tree, e.root
	if err := e.install(def); err != nil {
		e.definition = saved
		return err
	}
	old.Transition(oldRoot, input)
	e.logger.Info("tree reloaded", "tree", e.Name, "run_id", e.runID)
	return nil
}

// Step runs one driver step: Evaluate the root, then Tick it if eligible.
// ran is false when the root was not eligible; status is then Finish.
func (e *Engine) Step(input, output any) (status domain.RunningStatus, ran bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.steps++
	if !e.tree.Evaluate(e.root, input) {
		return domain.Finish, false
	}
	return e.tree.Tick(e.root, input, output), true
}

// Advance runs one step like Step and reports it together with the leaves it touched,
// all read under a single lock so a concurrent Reload cannot interleave.
func (e *Engine) Advance(input, output any) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.steps++
	res := StepResult{Step: e.steps, Status: domain.Finish}
	if e.tree.Evaluate(e.root, input) {
		res.Status = e.tree.Tick(e.root, input, output)
		res.Ran = true
	}
	res.Active = e.tree.Path(e.tree.ActiveNode(e.root))
	res.LastActive = e.tree.Path(e.tree.MostRecentLeaf(e.root))
	return res
}

// Evaluate asks whether the root could run now. It commits nothing.
func (e *Engine) Evaluate(input any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Evaluate(e.root, input)
}

// Tick advances the root without evaluating it first.
func (e *Engine) Tick(input, output any) domain.RunningStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps++
	return e.tree.Tick(e.root, input, output)
}

// Transition stops the running branch.
func (e *Engine) Transition(input any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tree.Transition(e.root, input)
}

// Reset transitions the root and clears the step counter.
func (e *Engine) Reset(input any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tree.Transition(e.root, input)
	e.steps = 0
}

// ActiveLeaf returns the path of the leaf currently running, or "".
func (e *Engine) ActiveLeaf() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Path(e.tree.ActiveNode(e.root))
}

// LastActiveLeaf returns the path of the most recently ticked leaf, or "".
// While a leaf is running this is the active leaf itself.
func (e *Engine) LastActiveLeaf() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Path(e.tree.MostRecentLeaf(e.root))
}

// Snapshot is a consistent view of the engine state.
type Snapshot struct {
	Name       string      `json:"name"`
	RunID      string      `json:"run_id"`
	Steps      int         `json:"steps"`
	Active     string      `json:"active,omitempty"`
	LastActive string      `json:"last_active,omitempty"`
	Tree       domain.Node `json:"tree"`
}

// Inspect returns the live tree with runtime metadata (handles, leaf states).
func (e *Engine) Inspect() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Name:       e.Name,
		RunID:      e.runID,
		Steps:      e.steps,
		Active:     e.tree.Path(e.tree.ActiveNode(e.root)),
		LastActive: e.tree.Path(e.tree.MostRecentLeaf(e.root)),
		Tree:       e.tree.Describe(e.root),
	}
}

// Definition returns the compiled definition.
func (e *Engine) Definition() domain.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.definition
}

// Tree returns the runtime tree. Callers must not use it concurrently with the engine.
func (e *Engine) Tree() *Tree {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree
}

// Root returns the handle of the root node.
func (e *Engine) Root() NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// RunID identifies the current compilation of the tree. It changes on Reload.
func (e *Engine) RunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

// Steps returns the number of steps since the last Reset or Reload.
func (e *Engine) Steps() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}

// Watch returns a channel that signals when the underlying definition changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying TreeLoader, nil for WithDefinition engines.
func (e *Engine) Loader() ports.TreeLoader {
	return e.loader
}
