package runtime

import "github.com/aretw0/bevtree/pkg/domain"

// loop re-runs its first child limit times, or forever for domain.InfiniteLoop.
type loop struct {
	limit int
	count int
}

func (l *loop) infinite() bool {
	return l.limit == domain.InfiniteLoop
}

func (l *loop) evaluate(t *Tree, self NodeID, input any) bool {
	if !l.infinite() && l.count >= l.limit {
		return false
	}
	if t.childCount(self) == 0 {
		return false
	}
	return t.Evaluate(t.child(self, 0), input)
}

func (l *loop) transition(t *Tree, self NodeID, input any) {
	if t.childCount(self) > 0 {
		t.Transition(t.child(self, 0), input)
	}
	l.count = 0
}

func (l *loop) tick(t *Tree, self NodeID, input, output any) domain.RunningStatus {
	status := domain.Finish
	if t.childCount(self) > 0 {
		status = t.Tick(t.child(self, 0), input, output)
		if status == domain.Finish {
			if l.infinite() {
				status = domain.Executing
			} else {
				l.count++
				if l.count < l.limit {
					status = domain.Executing
				}
			}
		}
	}
	if status.Done() {
		l.count = 0
	}
	return status
}
