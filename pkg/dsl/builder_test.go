package dsl

import (
	"testing"

	"github.com/aretw0/bevtree/internal/compiler"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guard() *NodeBuilder {
	return Priority("guard",
		Sequence("flee",
			Action("run", "wait").Param("ticks", 2),
		).When(All(Expr("hp < 3"), Not(Ref("cornered")))),
		Parallel("fight", domain.PolicyAnd,
			Action("aim", "succeed"),
			Action("shoot", "succeed").When(Xor(Always(), Never())),
		),
		Loop("patrol", 3, Action("step", "succeed")).Meta("owner", "ai"),
		Forever("idle", Action("", "log").Param("message", "idle")),
	)
}

func TestNodeBuilder_Build(t *testing.T) {
	root := guard().Build()

	assert.Equal(t, domain.NodeTypePriority, root.Type)
	require.Len(t, root.Children, 4)

	flee := root.Children[0]
	require.NotNil(t, flee.Precondition)
	require.Len(t, flee.Precondition.And, 2)
	assert.Equal(t, "cornered", flee.Precondition.And[1].Not.Ref)
	assert.Equal(t, 2, flee.Children[0].Params["ticks"])

	assert.Equal(t, domain.PolicyAnd, root.Children[1].Policy)
	assert.Equal(t, 3, root.Children[2].LoopCount())
	assert.Equal(t, "ai", root.Children[2].Metadata["owner"])
	assert.Equal(t, domain.InfiniteLoop, root.Children[3].LoopCount())
	assert.Equal(t, "log", root.Children[3].Children[0].DisplayName())
}

func TestBuilder_RoundTripsThroughParser(t *testing.T) {
	loader, err := New().Add("guard", guard()).Add("tiny", Action("only", "succeed")).Build()
	require.NoError(t, err)

	names, err := loader.ListTrees()
	require.NoError(t, err)
	assert.Equal(t, []string{"guard", "tiny"}, names)

	raw, err := loader.GetTree("guard")
	require.NoError(t, err)
	parsed, err := compiler.NewParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "flee", parsed.Children[0].Name)
	assert.Equal(t, "hp < 3", parsed.Children[0].Precondition.And[0].Expr)
}

func TestBuilder_ReplaceKeepsOrder(t *testing.T) {
	b := New().Add("a", Action("x", "succeed")).Add("b", Action("y", "succeed"))
	b.Add("a", Action("z", "fail"))

	assert.Equal(t, []string{"a", "b"}, b.Names())
	assert.Equal(t, "fail", b.trees["a"].Build().Action)
}
