package runtime

import "github.com/aretw0/bevtree/pkg/domain"

// parallel ticks every unfinished child each step.
// A child's status is frozen once it is done, until the whole node completes or is transitioned.
type parallel struct {
	policy   domain.FinishPolicy
	statuses []domain.RunningStatus
}

// status returns the recorded status of child i; unknown children are still executing.
func (p *parallel) status(i int) domain.RunningStatus {
	if i < len(p.statuses) {
		return p.statuses[i]
	}
	return domain.Executing
}

func (p *parallel) record(i int, s domain.RunningStatus) {
	for len(p.statuses) <= i {
		p.statuses = append(p.statuses, domain.Executing)
	}
	p.statuses[i] = s
}

func (p *parallel) reset() {
	for i := range p.statuses {
		p.statuses[i] = domain.Executing
	}
}

func (p *parallel) evaluate(t *Tree, self NodeID, input any) bool {
	for i := 0; i < t.childCount(self); i++ {
		if p.status(i) != domain.Executing {
			continue
		}
		if !t.Evaluate(t.child(self, i), input) {
			return false
		}
	}
	return true
}

func (p *parallel) transition(t *Tree, self NodeID, input any) {
	p.reset()
	for i := 0; i < t.childCount(self); i++ {
		t.Transition(t.child(self, i), input)
	}
}

func (p *parallel) tick(t *Tree, self NodeID, input, output any) domain.RunningStatus {
	n := t.childCount(self)
	finished := 0
	for i := 0; i < n; i++ {
		if p.status(i) == domain.Executing {
			p.record(i, t.Tick(t.child(self, i), input, output))
		}
		if p.status(i) == domain.Executing {
			continue
		}
		if p.policy == domain.PolicyOr {
			// Children after i are not ticked this step.
			p.reset()
			return domain.Finish
		}
		finished++
	}
	if finished == n {
		p.reset()
		return domain.Finish
	}
	return domain.Executing
}
