package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventNodeExit       EventType = "node_exit"
	EventNodeTick       EventType = "node_tick"
	EventNodeTransition EventType = "node_transition"
)

// NodeEvent describes something that happened to a single node.
type NodeEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	NodeID    int           `json:"node_id"`
	Name      string        `json:"name"`
	NodeType  string        `json:"node_type"`
	Status    RunningStatus `json:"status"`
}

// LifecycleHooks defines callbacks for engine observability.
// They are invoked synchronously from inside Tick and Transition.
type LifecycleHooks struct {
	// OnNodeEnter fires after a leaf's Enter hook.
	OnNodeEnter func(*NodeEvent)
	// OnNodeExit fires after a leaf's Exit hook. Status carries the exit code.
	OnNodeExit func(*NodeEvent)
	// OnNodeTick fires after any node's Tick returns.
	OnNodeTick func(*NodeEvent)
	// OnNodeTransition fires when a node is sent Transition.
	OnNodeTransition func(*NodeEvent)
}
