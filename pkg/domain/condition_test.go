package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition_String(t *testing.T) {
	c := Condition{And: []Condition{
		{Expr: "hp < 3"},
		{Not: &Condition{Ref: "cornered"}},
		{Xor: []Condition{{Const: Bool(true)}, {Const: Bool(false)}}},
	}}
	assert.Equal(t, "(hp < 3 and not cornered and (true xor false))", c.String())
	assert.Equal(t, "<empty>", Condition{}.String())
}

func TestNode_WalkAndDefaults(t *testing.T) {
	root := Node{Name: "root", Type: NodeTypeSequence, Children: []Node{
		{Type: NodeTypeAction, Action: "succeed"},
		{ID: "l", Type: NodeTypeLoop, Children: []Node{{Type: NodeTypeAction}}},
	}}

	var paths []string
	root.Walk(func(path string, n *Node) bool {
		paths = append(paths, path)
		return n.Type != NodeTypeLoop
	})
	assert.Equal(t, []string{"root", "root/succeed", "root/l"}, paths)

	assert.Equal(t, InfiniteLoop, root.Children[1].LoopCount())
	assert.Equal(t, PolicyOr, Node{}.ParallelPolicy())
	assert.Equal(t, DefaultDebugName, Node{}.DisplayName())
}

func TestRunningStatus_Done(t *testing.T) {
	assert.False(t, Executing.Done())
	assert.True(t, Finish.Done())
	assert.True(t, ErrorTransition.Done())
	assert.Equal(t, "unknown", RunningStatus(9).String())
}
