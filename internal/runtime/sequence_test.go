package runtime

import (
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_AdvancesThroughChildren(t *testing.T) {
	tree := NewTree()
	root, err := tree.NewSequence(NoNode, "seq")
	require.NoError(t, err)
	a, b := newProbe(), newProbe()
	leaf(t, tree, root, "a", a, nil)
	leaf(t, tree, root, "b", b, nil)
	seq := tree.nodes[root].impl.(*sequence)

	assert.Equal(t, domain.Executing, tree.Tick(root, nil, nil), "one step left")
	assert.Equal(t, pick(1), seq.current)
	assert.Equal(t, 1, a.executes)
	assert.Equal(t, 0, b.executes)

	assert.Equal(t, domain.Finish, tree.Tick(root, nil, nil))
	assert.Equal(t, none, seq.current)
	assert.Equal(t, 1, b.executes)
}

func TestSequence_AbortsOnError(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewSequence(NoNode, "seq")
	a, b := newProbe(domain.ErrorTransition, domain.Finish), newProbe()
	leaf(t, tree, root, "a", a, nil)
	leaf(t, tree, root, "b", b, nil)
	seq := tree.nodes[root].impl.(*sequence)

	assert.Equal(t, domain.ErrorTransition, tree.Tick(root, nil, nil))
	assert.Equal(t, none, seq.current)
	assert.Equal(t, 0, b.executes, "the next step is not ticked after an abort")
	assert.Equal(t, []domain.RunningStatus{domain.ErrorTransition}, a.exitStatuses)

	// The next run starts over from the first child.
	assert.Equal(t, domain.Executing, tree.Tick(root, nil, nil))
	assert.Equal(t, 2, a.executes)
}

func TestSequence_EvaluateProbesCurrentStep(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewSequence(NoNode, "seq")
	first, second := &gate{open: true}, &gate{open: false}
	leaf(t, tree, root, "a", newProbe(), first)
	leaf(t, tree, root, "b", newProbe(), second)

	assert.True(t, tree.Evaluate(root, nil), "probes child 0 before the first tick")

	tree.Tick(root, nil, nil)
	first.open = false
	second.open = true
	assert.True(t, tree.Evaluate(root, nil), "probes the current step, not the first one")

	second.open = false
	assert.False(t, tree.Evaluate(root, nil))
}

func TestSequence_Transition(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewSequence(NoNode, "seq")
	a, b := newProbe(), newProbe(domain.Executing)
	leaf(t, tree, root, "a", a, nil)
	leaf(t, tree, root, "b", b, nil)

	tree.Tick(root, nil, nil)
	tree.Tick(root, nil, nil)
	require.Equal(t, 1, b.enters)

	tree.Transition(root, nil)
	assert.Equal(t, 1, b.exits)
	assert.Equal(t, none, tree.nodes[root].impl.(*sequence).current)
	assert.Equal(t, 1, a.exits, "finished steps are not exited twice")
}

func TestSequence_Empty(t *testing.T) {
	tree := NewTree()
	root, _ := tree.NewSequence(NoNode, "seq")

	assert.False(t, tree.Evaluate(root, nil))
	assert.Equal(t, domain.Finish, tree.Tick(root, nil, nil))
}
