package dsl

import "github.com/aretw0/bevtree/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node     domain.Node
	children []*NodeBuilder
}

func newNode(typ, name string) *NodeBuilder {
	return &NodeBuilder{node: domain.Node{Type: typ, Name: name}}
}

// Priority starts a selector that re-picks the first eligible child every step.
func Priority(name string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.NodeTypePriority, name).Children(children...)
}

// Sticky starts a selector that keeps its running child while it stays eligible.
func Sticky(name string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.NodeTypeSticky, name).Children(children...)
}

// Sequence starts a node running its children in order.
func Sequence(name string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.NodeTypeSequence, name).Children(children...)
}

// Parallel starts a node ticking every child each step.
func Parallel(name string, policy domain.FinishPolicy, children ...*NodeBuilder) *NodeBuilder {
	n := newNode(domain.NodeTypeParallel, name).Children(children...)
	n.node.Policy = policy
	return n
}

// Loop repeats child count times. domain.InfiniteLoop repeats forever.
func Loop(name string, count int, child *NodeBuilder) *NodeBuilder {
	n := newNode(domain.NodeTypeLoop, name).Children(child)
	n.node.Count = domain.Int(count)
	return n
}

// Forever repeats child until it is interrupted.
func Forever(name string, child *NodeBuilder) *NodeBuilder {
	return newNode(domain.NodeTypeLoop, name).Children(child)
}

// Action creates a leaf running the registered action.
func Action(name, action string) *NodeBuilder {
	n := newNode(domain.NodeTypeAction, name)
	n.node.Action = action
	return n
}

// ID sets the node identifier.
func (n *NodeBuilder) ID(id string) *NodeBuilder {
	n.node.ID = id
	return n
}

// Children appends children in evaluation order.
func (n *NodeBuilder) Children(children ...*NodeBuilder) *NodeBuilder {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// When sets the precondition.
func (n *NodeBuilder) When(c domain.Condition) *NodeBuilder {
	n.node.Precondition = &c
	return n
}

// Param sets one action parameter.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	if n.node.Params == nil {
		n.node.Params = make(map[string]any)
	}
	n.node.Params[key] = value
	return n
}

// Meta adds a metadata entry.
func (n *NodeBuilder) Meta(key, value string) *NodeBuilder {
	if n.node.Metadata == nil {
		n.node.Metadata = make(map[string]string)
	}
	n.node.Metadata[key] = value
	return n
}

// Build returns the underlying domain.Node with its descendants.
func (n *NodeBuilder) Build() domain.Node {
	out := n.node
	out.Children = nil
	for _, c := range n.children {
		out.Children = append(out.Children, c.Build())
	}
	return out
}

// Always is the constant true condition.
func Always() domain.Condition { return domain.Condition{Const: domain.Bool(true)} }

// Never is the constant false condition.
func Never() domain.Condition { return domain.Condition{Const: domain.Bool(false)} }

// Expr is an expr-lang condition over the tick payload.
func Expr(source string) domain.Condition { return domain.Condition{Expr: source} }

// Ref names a condition registered on the host.
func Ref(name string) domain.Condition { return domain.Condition{Ref: name} }

// Not negates c.
func Not(c domain.Condition) domain.Condition { return domain.Condition{Not: &c} }

// All holds when every operand holds. Evaluation stops at the first false operand.
func All(cs ...domain.Condition) domain.Condition { return domain.Condition{And: cs} }

// Any holds when one operand holds. Evaluation stops at the first true operand.
func Any(cs ...domain.Condition) domain.Condition { return domain.Condition{Or: cs} }

// Xor holds when an odd number of operands hold. Every operand is evaluated.
func Xor(cs ...domain.Condition) domain.Condition { return domain.Condition{Xor: cs} }
