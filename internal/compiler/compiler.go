package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/bevtree/internal/runtime"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/precondition"
	"github.com/aretw0/bevtree/pkg/registry"
)

// Compiler builds runtime nodes from definitions.
type Compiler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// New creates a compiler resolving actions and named conditions through reg.
func New(reg *registry.Registry, logger *slog.Logger) *Compiler {
	if reg == nil {
		reg = registry.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{registry: reg, logger: logger}
}

// Compile adds def and its descendants to tree and returns the handle of the new root.
// Nodes created before a failure stay in the tree, detached from any parent that was full.
func (c *Compiler) Compile(tree *runtime.Tree, def *domain.Node) (runtime.NodeID, error) {
	return c.compile(tree, runtime.NoNode, def, def.DisplayName())
}

func (c *Compiler) compile(tree *runtime.Tree, parent runtime.NodeID, def *domain.Node, path string) (runtime.NodeID, error) {
	id, err := c.create(tree, parent, def)
	if err != nil {
		return runtime.NoNode, fmt.Errorf("%s: %w", path, err)
	}

	cond, err := precondition.Compile(def.Precondition, c.registry.Condition, c.logger)
	if err != nil {
		return runtime.NoNode, fmt.Errorf("%s: precondition: %w", path, err)
	}
	if cond != nil {
		if err := tree.SetPrecondition(id, cond); err != nil {
			return runtime.NoNode, err
		}
	}

	for i := range def.Children {
		child := &def.Children[i]
		if _, err := c.compile(tree, id, child, path+"/"+child.DisplayName()); err != nil {
			return runtime.NoNode, err
		}
	}
	return id, nil
}

func (c *Compiler) create(tree *runtime.Tree, parent runtime.NodeID, def *domain.Node) (runtime.NodeID, error) {
	name := def.DisplayName()
	switch def.Type {
	case domain.NodeTypePriority:
		return tree.NewPrioritySelector(parent, name)
	case domain.NodeTypeSticky:
		return tree.NewStickySelector(parent, name)
	case domain.NodeTypeSequence:
		return tree.NewSequence(parent, name)
	case domain.NodeTypeParallel:
		return tree.NewParallel(parent, name, def.ParallelPolicy())
	case domain.NodeTypeLoop:
		if len(def.Children) != 1 {
			return runtime.NoNode, fmt.Errorf("%w: loop needs exactly one child, got %d", domain.ErrInvalidDefinition, len(def.Children))
		}
		return tree.NewLoop(parent, name, def.LoopCount())
	case domain.NodeTypeAction:
		if len(def.Children) > 0 {
			return runtime.NoNode, fmt.Errorf("%w: action node cannot have children", domain.ErrInvalidDefinition)
		}
		action, err := c.registry.NewAction(def.Action, def.Params)
		if err != nil {
			return runtime.NoNode, err
		}
		return tree.NewTerminal(parent, name, action)
	default:
		return runtime.NoNode, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, def.Type)
	}
}
