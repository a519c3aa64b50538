package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/precondition"
)

// NodeID is a handle to a node inside a Tree.
type NodeID int

// NoNode is the handle of "no node" (no parent, no active leaf).
const NoNode NodeID = -1

// behavior is the node-specific part of the Evaluate/Transition/Tick protocol.
type behavior interface {
	evaluate(t *Tree, self NodeID, input any) bool
	transition(t *Tree, self NodeID, input any)
	tick(t *Tree, self NodeID, input, output any) domain.RunningStatus
}

type node struct {
	kind         string
	name         string
	parent       NodeID
	children     []NodeID
	precondition precondition.Condition
	active       NodeID
	lastActive   NodeID
	impl         behavior
}

// Tree owns every node of one or more behavior trees.
// Nodes reference their parent and children by handle; the tree is the only owner.
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes  []node
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) TreeOption {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) TreeOption {
	return func(t *Tree) {
		t.hooks = hooks
	}
}

// NewTree creates an empty tree.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of nodes owned by the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// newNode creates a node and attaches it to parent (NoNode creates a root).
// Nothing is created when the parent is full.
func (t *Tree) newNode(parent NodeID, kind, name string, impl behavior) (NodeID, error) {
	if parent != NoNode {
		if err := t.checkCapacity(parent); err != nil {
			return NoNode, err
		}
	}
	if name == "" {
		name = domain.DefaultDebugName
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:       kind,
		name:       name,
		parent:     NoNode,
		active:     NoNode,
		lastActive: NoNode,
		impl:       impl,
	})
	if parent != NoNode {
		t.attach(parent, id)
	}
	return id, nil
}

// NewPrioritySelector creates a selector that always picks the first eligible child.
func (t *Tree) NewPrioritySelector(parent NodeID, name string) (NodeID, error) {
	return t.newNode(parent, domain.NodeTypePriority, name, &prioritySelector{})
}

// NewStickySelector creates a selector that keeps its running child while it stays eligible.
func (t *Tree) NewStickySelector(parent NodeID, name string) (NodeID, error) {
	return t.newNode(parent, domain.NodeTypeSticky, name, &stickySelector{})
}

// NewSequence creates a sequence node.
func (t *Tree) NewSequence(parent NodeID, name string) (NodeID, error) {
	return t.newNode(parent, domain.NodeTypeSequence, name, &sequence{})
}

// NewParallel creates a parallel node with the given finish policy.
func (t *Tree) NewParallel(parent NodeID, name string, policy domain.FinishPolicy) (NodeID, error) {
	switch policy {
	case domain.PolicyOr, domain.PolicyAnd:
	default:
		return NoNode, fmt.Errorf("%w: parallel policy %q", domain.ErrInvalidDefinition, policy)
	}
	return t.newNode(parent, domain.NodeTypeParallel, name, &parallel{policy: policy})
}

// NewLoop creates a loop node repeating its first child count times.
// domain.InfiniteLoop repeats forever.
func (t *Tree) NewLoop(parent NodeID, name string, count int) (NodeID, error) {
	if count < 0 && count != domain.InfiniteLoop {
		return NoNode, fmt.Errorf("%w: loop count %d", domain.ErrInvalidDefinition, count)
	}
	return t.newNode(parent, domain.NodeTypeLoop, name, &loop{limit: count})
}

// NewTerminal creates a leaf running action. A nil action finishes on its first tick.
func (t *Tree) NewTerminal(parent NodeID, name string, action Action) (NodeID, error) {
	return t.newNode(parent, domain.NodeTypeAction, name, &terminal{action: action})
}

// NewNode creates a node with no behavior of its own.
// It evaluates true, ignores Transition and finishes on every Tick.
func (t *Tree) NewNode(parent NodeID, name string) (NodeID, error) {
	return t.newNode(parent, "node", name, baseBehavior{})
}

// AddChild attaches an existing root node under parent.
// Attaching beyond domain.MaxChildren fails and leaves both nodes untouched.
func (t *Tree) AddChild(parent, child NodeID) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("%w: %d -> %d", domain.ErrNodeNotFound, parent, child)
	}
	if t.nodes[child].parent != NoNode || child == parent {
		return fmt.Errorf("%w: %q", domain.ErrAlreadyAttached, t.nodes[child].name)
	}
	for p := parent; p != NoNode; p = t.nodes[p].parent {
		if p == child {
			return fmt.Errorf("%w: %q is an ancestor of %q", domain.ErrAlreadyAttached, t.nodes[child].name, t.nodes[parent].name)
		}
	}
	if err := t.checkCapacity(parent); err != nil {
		return err
	}
	t.attach(parent, child)
	return nil
}

func (t *Tree) checkCapacity(parent NodeID) error {
	if !t.valid(parent) {
		return fmt.Errorf("%w: parent %d", domain.ErrNodeNotFound, parent)
	}
	if len(t.nodes[parent].children) >= domain.MaxChildren {
		t.logger.Error("the number of child nodes is up to the limit",
			"node", t.nodes[parent].name, "limit", domain.MaxChildren)
		return fmt.Errorf("%w: node %q already has %d children", domain.ErrTooManyChildren, t.nodes[parent].name, domain.MaxChildren)
	}
	return nil
}

func (t *Tree) attach(parent, child NodeID) {
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
}

// SetPrecondition replaces the node's precondition. nil removes it.
func (t *Tree) SetPrecondition(id NodeID, c precondition.Condition) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d", domain.ErrNodeNotFound, id)
	}
	t.nodes[id].precondition = c
	return nil
}

// SetDebugName renames the node.
func (t *Tree) SetDebugName(id NodeID, name string) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d", domain.ErrNodeNotFound, id)
	}
	t.nodes[id].name = name
	return nil
}

// Name returns the debug name of the node, or "" for an unknown handle.
func (t *Tree) Name(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].name
}

// Kind returns the node type (one of the domain.NodeType constants).
func (t *Tree) Kind(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].kind
}

// Parent returns the parent handle, or NoNode for a root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// Children returns a copy of the node's children in evaluation order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return append([]NodeID(nil), t.nodes[id].children...)
}

// ActiveNode returns the leaf currently marked active under id.
func (t *Tree) ActiveNode(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].active
}

// LastActiveNode returns the previous value of the active marker under id.
// With several leaves running under id this is not necessarily the last one ticked;
// use MostRecentLeaf for that.
func (t *Tree) LastActiveNode(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].lastActive
}

// MostRecentLeaf returns the leaf ticked most recently under id: the active leaf while
// one is running, otherwise the one that just finished or was transitioned.
func (t *Tree) MostRecentLeaf(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	if n := &t.nodes[id]; n.active != NoNode {
		return n.active
	}
	return t.nodes[id].lastActive
}

// SetActiveNode marks active at id and at every ancestor up to the root.
func (t *Tree) SetActiveNode(id, active NodeID) {
	for cur := id; t.valid(cur); cur = t.nodes[cur].parent {
		n := &t.nodes[cur]
		n.lastActive = n.active
		n.active = active
	}
}

// Evaluate reports whether the node could usefully run now.
// The node's own logic is skipped when its precondition fails.
func (t *Tree) Evaluate(id NodeID, input any) bool {
	if !t.valid(id) {
		return false
	}
	n := &t.nodes[id]
	if n.precondition != nil && !n.precondition.ExternalCondition(input) {
		return false
	}
	return n.impl.evaluate(t, id, input)
}

// Transition stops whatever the node considers running and resets its selection state.
func (t *Tree) Transition(id NodeID, input any) {
	if !t.valid(id) {
		return
	}
	t.emit(t.hooks.OnNodeTransition, domain.EventNodeTransition, id, domain.Executing)
	t.nodes[id].impl.transition(t, id, input)
}

// Tick advances the node by one step.
func (t *Tree) Tick(id NodeID, input, output any) domain.RunningStatus {
	if !t.valid(id) {
		return domain.Finish
	}
	status := t.nodes[id].impl.tick(t, id, input, output)
	t.emit(t.hooks.OnNodeTick, domain.EventNodeTick, id, status)
	return status
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// child returns the handle of the i-th child of id.
func (t *Tree) child(id NodeID, i int) NodeID {
	return t.nodes[id].children[i]
}

func (t *Tree) childCount(id NodeID) int {
	return len(t.nodes[id].children)
}

func (t *Tree) emit(hook func(*domain.NodeEvent), typ domain.EventType, id NodeID, status domain.RunningStatus) {
	if hook == nil {
		return
	}
	n := &t.nodes[id]
	hook(&domain.NodeEvent{
		Timestamp: time.Now(),
		Type:      typ,
		NodeID:    int(id),
		Name:      n.name,
		NodeType:  n.kind,
		Status:    status,
	})
}

// baseBehavior is the default: always eligible, nothing to stop, done immediately.
type baseBehavior struct{}

func (baseBehavior) evaluate(*Tree, NodeID, any) bool { return true }

func (baseBehavior) transition(*Tree, NodeID, any) {}

func (baseBehavior) tick(*Tree, NodeID, any, any) domain.RunningStatus { return domain.Finish }
