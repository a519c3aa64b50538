package runtime

import (
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
)

// Action is the leaf hook surface, see ports.Action.
type Action = ports.Action

// terminal drives an Action through the Ready -> Running -> Finish lifecycle.
// needExit records an Enter that has not been matched by an Exit yet.
type terminal struct {
	action   Action
	status   domain.TerminalStatus
	needExit bool
}

func (l *terminal) evaluate(*Tree, NodeID, any) bool { return true }

func (l *terminal) transition(t *Tree, self NodeID, input any) {
	if l.needExit {
		t.logger.Debug("leaf interrupted", "node", t.Name(self))
		l.exit(t, self, input, domain.ErrorTransition)
	}
	t.SetActiveNode(self, NoNode)
	l.status = domain.TerminalReady
	l.needExit = false
}

func (l *terminal) tick(t *Tree, self NodeID, input, output any) domain.RunningStatus {
	status := domain.Finish
	if l.status == domain.TerminalReady {
		if l.action != nil {
			l.action.Enter(input)
		}
		l.needExit = true
		l.status = domain.TerminalRunning
		t.SetActiveNode(self, self)
		t.emit(t.hooks.OnNodeEnter, domain.EventNodeEnter, self, domain.Executing)
	}
	if l.status == domain.TerminalRunning {
		if l.action != nil {
			status = l.action.Execute(input, output)
		}
		t.SetActiveNode(self, self)
		if status.Done() {
			l.status = domain.TerminalFinish
		}
	}
	if l.status == domain.TerminalFinish {
		if l.needExit {
			l.exit(t, self, input, status)
		}
		l.status = domain.TerminalReady
		l.needExit = false
		t.SetActiveNode(self, NoNode)
	}
	return status
}

func (l *terminal) exit(t *Tree, self NodeID, input any, status domain.RunningStatus) {
	if l.action != nil {
		l.action.Exit(input, status)
	}
	t.emit(t.hooks.OnNodeExit, domain.EventNodeExit, self, status)
}

// TerminalStatus reports the lifecycle state of a leaf. Non-leaves report TerminalReady.
func (t *Tree) TerminalStatus(id NodeID) domain.TerminalStatus {
	if !t.valid(id) {
		return domain.TerminalReady
	}
	if l, ok := t.nodes[id].impl.(*terminal); ok {
		return l.status
	}
	return domain.TerminalReady
}
