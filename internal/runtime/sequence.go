package runtime

import "github.com/aretw0/bevtree/pkg/domain"

// sequence runs its children one after another.
type sequence struct {
	current choice
}

func (s *sequence) evaluate(t *Tree, self NodeID, input any) bool {
	next := s.current
	if !next.ok {
		next = pick(0)
	}
	if !next.in(t.childCount(self)) {
		return false
	}
	return t.Evaluate(t.child(self, next.index), input)
}

func (s *sequence) transition(t *Tree, self NodeID, input any) {
	if s.current.in(t.childCount(self)) {
		t.Transition(t.child(self, s.current.index), input)
	}
	s.current = none
}

func (s *sequence) tick(t *Tree, self NodeID, input, output any) domain.RunningStatus {
	n := t.childCount(self)
	if !s.current.ok {
		s.current = pick(0)
	}
	if !s.current.in(n) {
		s.current = none
		return domain.Finish
	}

	status := t.Tick(t.child(self, s.current.index), input, output)
	switch status {
	case domain.Finish:
		s.current = pick(s.current.index + 1)
		if s.current.index == n {
			s.current = none
			return domain.Finish
		}
		return domain.Executing
	case domain.ErrorTransition:
		t.logger.Debug("sequence aborted", "node", t.Name(self), "step", s.current.index)
		s.current = none
	}
	return status
}
