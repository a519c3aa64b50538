package runtime

import (
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrioritySelector_PicksFirstEligible(t *testing.T) {
	tree := NewTree()
	root, err := tree.NewPrioritySelector(NoNode, "root")
	require.NoError(t, err)

	a, b, c := newProbe(), newProbe(domain.Executing), newProbe()
	leaf(t, tree, root, "a", a, &gate{open: false})
	bID := leaf(t, tree, root, "b", b, &gate{open: true})
	leaf(t, tree, root, "c", c, &gate{open: true})

	require.True(t, tree.Evaluate(root, nil))
	sel := tree.nodes[root].impl.(*prioritySelector)
	assert.Equal(t, pick(1), sel.candidate)
	assert.Equal(t, none, sel.running, "Evaluate must not commit")

	status := tree.Tick(root, nil, nil)
	assert.Equal(t, domain.Executing, status)
	assert.Equal(t, pick(1), sel.running)
	assert.Equal(t, 0, a.enters+a.exits)
	assert.Equal(t, 1, b.enters)
	assert.Equal(t, 1, b.executes)
	assert.Equal(t, 0, b.exits, "no prior child to transition")
	assert.Equal(t, 0, c.executes)
	assert.Equal(t, bID, tree.ActiveNode(root))
}

func TestPrioritySelector_NoEligibleChild(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	leaf(t, tree, root, "a", newProbe(), &gate{open: false})

	assert.False(t, tree.Evaluate(root, nil))
	assert.Equal(t, domain.Finish, tree.Tick(root, nil, nil))
}

func TestPrioritySelector_PreemptsLowerPriority(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")

	urgent := &gate{open: false}
	high, low := newProbe(domain.Executing), newProbe(domain.Executing)
	highID := leaf(t, tree, root, "high", high, urgent)
	leaf(t, tree, root, "low", low, nil)

	status, ok := step(tree, root, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Executing, status)
	assert.Equal(t, 1, low.enters)

	urgent.open = true
	status, ok = step(tree, root, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Executing, status)

	assert.Equal(t, 1, low.exits, "low priority branch is abandoned")
	assert.Equal(t, []domain.RunningStatus{domain.ErrorTransition}, low.exitStatuses)
	assert.Equal(t, domain.TerminalReady, tree.TerminalStatus(tree.child(root, 1)))
	assert.Equal(t, 1, high.enters)
	assert.Equal(t, highID, tree.LastActiveNode(root))
}

func TestPrioritySelector_ClearsRunningWhenChildFinishes(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	p := newProbe(domain.Executing, domain.Finish)
	leaf(t, tree, root, "a", p, nil)
	sel := tree.nodes[root].impl.(*prioritySelector)

	status, _ := step(tree, root, nil)
	assert.Equal(t, domain.Executing, status)
	status, _ = step(tree, root, nil)
	assert.Equal(t, domain.Finish, status)
	assert.Equal(t, none, sel.running)
	assert.Equal(t, 1, p.enters)
	assert.Equal(t, 1, p.exits)
}

func TestPrioritySelector_ErrorTransitionIsDone(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	leaf(t, tree, root, "a", newProbe(domain.ErrorTransition), nil)
	sel := tree.nodes[root].impl.(*prioritySelector)

	status, _ := step(tree, root, nil)
	assert.Equal(t, domain.ErrorTransition, status)
	assert.Equal(t, none, sel.running)
}

func TestPrioritySelector_Transition(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewPrioritySelector(NoNode, "root")
	p := newProbe(domain.Executing)
	leaf(t, tree, root, "a", p, nil)

	step(tree, root, nil)
	tree.Transition(root, nil)

	assert.Equal(t, 1, p.exits)
	assert.Equal(t, none, tree.nodes[root].impl.(*prioritySelector).running)
	assert.Equal(t, NoNode, tree.ActiveNode(root))

	tree.Transition(root, nil)
	assert.Equal(t, 1, p.exits, "second transition has nothing to stop")
}

func TestStickySelector_KeepsRunningChild(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewStickySelector(NoNode, "root")

	first := &gate{open: false}
	a, b := newProbe(domain.Executing), newProbe(domain.Executing)
	leaf(t, tree, root, "a", a, first)
	bID := leaf(t, tree, root, "b", b, nil)

	step(tree, root, nil)
	require.Equal(t, 1, b.enters)

	first.open = true
	status, ok := step(tree, root, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Executing, status)

	assert.Equal(t, 0, a.enters, "earlier sibling must not preempt the running child")
	assert.Equal(t, 2, b.executes)
	assert.Equal(t, 0, b.exits)
	assert.Equal(t, bID, tree.ActiveNode(root))
}

func TestStickySelector_FallsBackWhenRunningChildIneligible(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewStickySelector(NoNode, "root")

	keep := &gate{open: true}
	a, b := newProbe(domain.Executing), newProbe(domain.Executing)
	leaf(t, tree, root, "a", a, nil)
	leaf(t, tree, root, "b", b, keep)

	// a is first and eligible, so the scan picks it.
	step(tree, root, nil)
	assert.Equal(t, 1, a.enters)

	// a loses eligibility while running.
	require.NoError(t, tree.SetPrecondition(tree.child(root, 0), &gate{open: false}))
	step(tree, root, nil)
	assert.Equal(t, 1, a.exits, "running child lost eligibility and is transitioned")
	assert.Equal(t, 1, b.enters)
}

func TestSelectors_InsertionOrderDecides(t *testing.T) {
	build := func(names ...string) (*Tree, NodeID, map[string]*probe) {
		tree := NewTree()
		root, _ := tree.NewPrioritySelector(NoNode, "root")
		probes := map[string]*probe{}
		for _, n := range names {
			probes[n] = newProbe(domain.Executing)
			leaf(t, tree, root, n, probes[n], nil)
		}
		return tree, root, probes
	}

	tree, root, probes := build("x", "y")
	step(tree, root, nil)
	assert.Equal(t, 1, probes["x"].enters)
	assert.Equal(t, 0, probes["y"].enters)
	assert.Equal(t, "x", tree.Name(tree.LastActiveNode(root)))

	tree, root, probes = build("y", "x")
	step(tree, root, nil)
	assert.Equal(t, 0, probes["x"].enters)
	assert.Equal(t, 1, probes["y"].enters)
	assert.Equal(t, "y", tree.Name(tree.LastActiveNode(root)))
}
