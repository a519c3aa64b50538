package runtime

import (
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/precondition"
	"github.com/stretchr/testify/require"
)

// probe is a scripted leaf action that records every hook call.
// Execute returns script[i] on the i-th call and repeats the last entry afterwards.
type probe struct {
	script []domain.RunningStatus

	enters       int
	executes     int
	exits        int
	exitStatuses []domain.RunningStatus
}

func newProbe(script ...domain.RunningStatus) *probe {
	if len(script) == 0 {
		script = []domain.RunningStatus{domain.Finish}
	}
	return &probe{script: script}
}

func (p *probe) Enter(any) { p.enters++ }

func (p *probe) Execute(any, any) domain.RunningStatus {
	i := p.executes
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	p.executes++
	return p.script[i]
}

func (p *probe) Exit(_ any, status domain.RunningStatus) {
	p.exits++
	p.exitStatuses = append(p.exitStatuses, status)
}

// gate is a switchable precondition.
type gate struct {
	open bool
}

func (g *gate) ExternalCondition(any) bool { return g.open }

var _ precondition.Condition = (*gate)(nil)

// leaf adds a probe leaf under parent, gated by g when g is non-nil.
func leaf(t *testing.T, tree *Tree, parent NodeID, name string, p *probe, g *gate) NodeID {
	t.Helper()
	id, err := tree.NewTerminal(parent, name, p)
	require.NoError(t, err)
	if g != nil {
		require.NoError(t, tree.SetPrecondition(id, g))
	}
	return id
}

// step runs one driver step: Evaluate, then Tick when eligible.
func step(tree *Tree, root NodeID, input any) (domain.RunningStatus, bool) {
	if !tree.Evaluate(root, input) {
		return domain.Finish, false
	}
	return tree.Tick(root, input, nil), true
}
