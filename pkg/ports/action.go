package ports

import "github.com/aretw0/bevtree/pkg/domain"

// Action is the hook surface implemented by leaf authors.
// The engine guarantees that every Enter is matched by exactly one Exit,
// whether the run ends naturally or is interrupted by Transition.
type Action interface {
	// Enter is called once when the leaf starts a run.
	Enter(input any)
	// Execute advances the leaf by one step.
	Execute(input, output any) domain.RunningStatus
	// Exit is called once when the run ends. status is ErrorTransition when the run was interrupted.
	Exit(input any, status domain.RunningStatus)
}

// ActionFunc adapts a plain function to an Action with no Enter/Exit work.
type ActionFunc func(input, output any) domain.RunningStatus

func (f ActionFunc) Enter(any) {}

func (f ActionFunc) Execute(input, output any) domain.RunningStatus {
	return f(input, output)
}

func (f ActionFunc) Exit(any, domain.RunningStatus) {}

// Hooks is an Action assembled from optional functions.
// Missing Execute behaves like a leaf with no override and finishes immediately.
type Hooks struct {
	OnEnter   func(input any)
	OnExecute func(input, output any) domain.RunningStatus
	OnExit    func(input any, status domain.RunningStatus)
}

func (h Hooks) Enter(input any) {
	if h.OnEnter != nil {
		h.OnEnter(input)
	}
}

func (h Hooks) Execute(input, output any) domain.RunningStatus {
	if h.OnExecute == nil {
		return domain.Finish
	}
	return h.OnExecute(input, output)
}

func (h Hooks) Exit(input any, status domain.RunningStatus) {
	if h.OnExit != nil {
		h.OnExit(input, status)
	}
}
