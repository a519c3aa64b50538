package domain

// NodeType constants define the control flow behavior of a node definition.
const (
	// NodeTypePriority picks the first child whose evaluation succeeds, every step.
	NodeTypePriority = "priority"
	// NodeTypeSticky keeps the running child while it still evaluates true.
	NodeTypeSticky = "sticky"
	// NodeTypeSequence runs children in order.
	NodeTypeSequence = "sequence"
	// NodeTypeParallel ticks every child each step.
	NodeTypeParallel = "parallel"
	// NodeTypeLoop repeats its single child.
	NodeTypeLoop = "loop"
	// NodeTypeAction is a leaf bound to a registered action.
	NodeTypeAction = "action"
)

// Node is the declarative definition of a behavior tree node.
// A tree definition is a root Node with nested Children; insertion order is evaluation order.
type Node struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Type string `json:"type" yaml:"type" mapstructure:"type" validate:"required,oneof=priority sticky sequence parallel loop action"`

	// Precondition gates the node. Nil means always eligible.
	Precondition *Condition `json:"precondition,omitempty" yaml:"precondition,omitempty" mapstructure:"precondition"`

	Children []Node `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children" validate:"max=16,dive"`

	// Policy applies to parallel nodes. Empty means PolicyOr.
	Policy FinishPolicy `json:"policy,omitempty" yaml:"policy,omitempty" mapstructure:"policy" validate:"omitempty,oneof=or and"`

	// Count applies to loop nodes. Nil means InfiniteLoop.
	Count *int `json:"count,omitempty" yaml:"count,omitempty" mapstructure:"count" validate:"omitempty,min=-1"`

	// Action names the registered action of a leaf.
	Action string         `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`

	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata"`
}

// DisplayName returns the best human label for the node.
func (n Node) DisplayName() string {
	switch {
	case n.Name != "":
		return n.Name
	case n.ID != "":
		return n.ID
	case n.Action != "":
		return n.Action
	default:
		return DefaultDebugName
	}
}

// LoopCount resolves the configured loop count, defaulting to InfiniteLoop.
func (n Node) LoopCount() int {
	if n.Count == nil {
		return InfiniteLoop
	}
	return *n.Count
}

// ParallelPolicy resolves the parallel policy, defaulting to PolicyOr.
func (n Node) ParallelPolicy() FinishPolicy {
	if n.Policy == "" {
		return PolicyOr
	}
	return n.Policy
}

// Walk visits the node and its descendants depth-first, in child order.
// Returning false from fn stops the descent below that node.
func (n *Node) Walk(fn func(path string, node *Node) bool) {
	n.walk(n.DisplayName(), fn)
}

func (n *Node) walk(path string, fn func(string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for i := range n.Children {
		child := &n.Children[i]
		child.walk(path+"/"+child.DisplayName(), fn)
	}
}
