package runtime

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/precondition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_ChildCapacity(t *testing.T) {
	var logs bytes.Buffer
	tree := NewTree(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	root, _ := tree.NewSequence(NoNode, "root")

	for i := 0; i < domain.MaxChildren; i++ {
		_, err := tree.NewTerminal(root, "leaf", nil)
		require.NoError(t, err)
	}
	before := tree.Len()

	_, err := tree.NewTerminal(root, "overflow", nil)
	assert.ErrorIs(t, err, domain.ErrTooManyChildren)
	assert.Equal(t, before, tree.Len(), "rejected node is not created")
	assert.Len(t, tree.Children(root), domain.MaxChildren)
	assert.Contains(t, logs.String(), "level=ERROR")

	orphan, _ := tree.NewTerminal(NoNode, "orphan", nil)
	assert.ErrorIs(t, tree.AddChild(root, orphan), domain.ErrTooManyChildren)
	assert.Equal(t, NoNode, tree.Parent(orphan))
}

func TestTree_AddChild(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	sub, _ := tree.NewSequence(NoNode, "sub")
	l, _ := tree.NewTerminal(NoNode, "leaf", nil)

	require.NoError(t, tree.AddChild(sub, l))
	require.NoError(t, tree.AddChild(root, sub))
	assert.Equal(t, []NodeID{sub}, tree.Children(root))
	assert.Equal(t, root, tree.Parent(sub))
	assert.Equal(t, "root/sub/leaf", tree.Path(l))

	assert.ErrorIs(t, tree.AddChild(root, l), domain.ErrAlreadyAttached)
	assert.ErrorIs(t, tree.AddChild(l, root), domain.ErrAlreadyAttached, "cycles are rejected")
	assert.ErrorIs(t, tree.AddChild(root, root), domain.ErrAlreadyAttached)
	assert.ErrorIs(t, tree.AddChild(root, NodeID(99)), domain.ErrNodeNotFound)
}

func TestTree_DefaultsAndNames(t *testing.T) {
	tree := NewTree()
	id, err := tree.NewNode(NoNode, "")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDebugName, tree.Name(id))
	assert.True(t, tree.Evaluate(id, nil))
	assert.Equal(t, domain.Finish, tree.Tick(id, nil, nil))
	tree.Transition(id, nil)

	require.NoError(t, tree.SetDebugName(id, "renamed"))
	assert.Equal(t, "renamed", tree.Name(id))
	assert.ErrorIs(t, tree.SetDebugName(NodeID(7), "x"), domain.ErrNodeNotFound)
	assert.False(t, tree.Evaluate(NodeID(7), nil))
}

// countingCondition counts how often it was consulted.
type countingCondition struct {
	calls int
}

func (c *countingCondition) ExternalCondition(any) bool {
	c.calls++
	return true
}

func TestTree_PreconditionShortCircuits(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	child, _ := tree.NewTerminal(root, "child", nil)
	probe := &countingCondition{}
	require.NoError(t, tree.SetPrecondition(child, probe))

	require.NoError(t, tree.SetPrecondition(root, precondition.False{}))
	assert.False(t, tree.Evaluate(root, nil))
	assert.Equal(t, 0, probe.calls, "children are not evaluated behind a failing precondition")

	require.NoError(t, tree.SetPrecondition(root, precondition.Not(precondition.False{})))
	assert.True(t, tree.Evaluate(root, nil))
	assert.Equal(t, 1, probe.calls)

	require.NoError(t, tree.SetPrecondition(root, nil))
	assert.True(t, tree.Evaluate(root, nil))
}

func TestTree_EvaluateDoesNotCommit(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	p := newProbe(domain.Executing)
	leaf(t, tree, root, "a", p, nil)

	for i := 0; i < 3; i++ {
		assert.True(t, tree.Evaluate(root, nil))
	}
	assert.Equal(t, 0, p.enters)
	assert.Equal(t, 0, p.executes)
}

func TestTree_LifecycleHooks(t *testing.T) {
	var events []string
	record := func(e *domain.NodeEvent) {
		events = append(events, string(e.Type)+":"+e.Name+":"+e.Status.String())
	}
	tree := NewTree(WithLifecycleHooks(domain.LifecycleHooks{
		OnNodeEnter:      record,
		OnNodeExit:       record,
		OnNodeTick:       record,
		OnNodeTransition: record,
	}))
	root, _ := tree.NewSequence(NoNode, "root")
	leaf(t, tree, root, "a", newProbe(domain.Executing), nil)

	tree.Tick(root, nil, nil)
	tree.Transition(root, nil)

	assert.Equal(t, []string{
		"node_enter:a:executing",
		"node_tick:a:executing",
		"node_tick:root:executing",
		"node_transition:root:executing",
		"node_transition:a:executing",
		"node_exit:a:error_transition",
	}, events)
}

func TestTree_Describe(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewParallel(NoNode, "root", domain.PolicyAnd)
	lp, _ := tree.NewLoop(root, "repeat", 3)
	l, _ := tree.NewTerminal(lp, "work", nil)
	require.NoError(t, tree.SetPrecondition(l, precondition.True{}))

	def := tree.Describe(root)
	assert.Equal(t, domain.NodeTypeParallel, def.Type)
	assert.Equal(t, domain.PolicyAnd, def.Policy)
	require.Len(t, def.Children, 1)
	assert.Equal(t, 3, def.Children[0].LoopCount())
	require.Len(t, def.Children[0].Children, 1)
	work := def.Children[0].Children[0]
	assert.Equal(t, "work", work.Name)
	assert.Equal(t, "ready", work.Metadata["status"])
	assert.Equal(t, "precondition.True", work.Metadata["precondition"])
}
