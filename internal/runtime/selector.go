package runtime

import "github.com/aretw0/bevtree/pkg/domain"

// selection is the state shared by both selector flavours:
// the candidate picked by the last Evaluate and the child actually running.
type selection struct {
	candidate choice
	running   choice
}

// scan picks the first child whose Evaluate succeeds.
func (s *selection) scan(t *Tree, self NodeID, input any) bool {
	s.candidate = none
	for i := 0; i < t.childCount(self); i++ {
		if t.Evaluate(t.child(self, i), input) {
			s.candidate = pick(i)
			return true
		}
	}
	return false
}

func (s *selection) transition(t *Tree, self NodeID, input any) {
	if s.running.in(t.childCount(self)) {
		t.Transition(t.child(self, s.running.index), input)
	}
	s.running = none
}

// tick commits the candidate, stopping the previous child on a switch, then ticks the running child.
func (s *selection) tick(t *Tree, self NodeID, input, output any) domain.RunningStatus {
	n := t.childCount(self)
	if s.candidate.in(n) && s.candidate != s.running {
		if s.running.in(n) {
			t.logger.Debug("selector switching branch",
				"node", t.Name(self),
				"from", t.Name(t.child(self, s.running.index)),
				"to", t.Name(t.child(self, s.candidate.index)))
			t.Transition(t.child(self, s.running.index), input)
		}
		s.running = s.candidate
	}

	status := domain.Finish
	if s.running.in(n) {
		status = t.Tick(t.child(self, s.running.index), input, output)
		if status.Done() {
			s.running = none
		}
	}
	return status
}

// prioritySelector re-scans its children from the first one on every Evaluate.
type prioritySelector struct {
	selection
}

func (s *prioritySelector) evaluate(t *Tree, self NodeID, input any) bool {
	return s.scan(t, self, input)
}

// stickySelector keeps the running child as long as it stays eligible.
type stickySelector struct {
	selection
}

func (s *stickySelector) evaluate(t *Tree, self NodeID, input any) bool {
	if s.running.in(t.childCount(self)) && t.Evaluate(t.child(self, s.running.index), input) {
		s.candidate = s.running
		return true
	}
	return s.scan(t, self, input)
}
