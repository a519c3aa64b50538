package domain

const (
	// MaxChildren is the hard cap on children per node.
	MaxChildren = 16

	// InfiniteLoop is the loop count sentinel for unbounded repetition.
	InfiniteLoop = -1

	// DefaultDebugName is the name given to nodes that were never named.
	DefaultDebugName = "UNNAMED"
)
