package domain

// RunningStatus is the result of a Tick.
type RunningStatus int

const (
	// Executing means the node is still in progress and must be ticked again.
	Executing RunningStatus = iota
	// Finish means the node completed normally.
	Finish
	// ErrorTransition means the node completed abnormally.
	// Callers treat it like an interruption of the branch.
	ErrorTransition
)

// Done reports whether the status is terminal (Finish or ErrorTransition).
func (s RunningStatus) Done() bool {
	switch s {
	case Finish, ErrorTransition:
		return true
	default:
		return false
	}
}

func (s RunningStatus) String() string {
	switch s {
	case Executing:
		return "executing"
	case Finish:
		return "finish"
	case ErrorTransition:
		return "error_transition"
	default:
		return "unknown"
	}
}

// TerminalStatus is the private lifecycle state of a leaf node.
type TerminalStatus int

const (
	TerminalReady TerminalStatus = iota
	TerminalRunning
	TerminalFinish
)

func (s TerminalStatus) String() string {
	switch s {
	case TerminalReady:
		return "ready"
	case TerminalRunning:
		return "running"
	case TerminalFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// FinishPolicy decides when a parallel node completes.
type FinishPolicy string

const (
	// PolicyOr finishes as soon as one child is done.
	PolicyOr FinishPolicy = "or"
	// PolicyAnd finishes once every child is done.
	PolicyAnd FinishPolicy = "and"
)
