// Package gobt bridges bevtree and github.com/joeycumines/go-behaviortree.
//
// Node exposes a whole bevtree engine as a go-behaviortree node, so it can be driven
// by bt.NewTicker or embedded in a bt.Sequence. Action goes the other way and runs a
// go-behaviortree node as a bevtree leaf.
package gobt

import (
	"fmt"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
	bt "github.com/joeycumines/go-behaviortree"
)

// Stepper performs one driver step: Evaluate the root, then Tick it when eligible.
// ran is false when the root was not eligible.
type Stepper interface {
	Step(input, output any) (status domain.RunningStatus, ran bool)
}

// Node wraps s as a go-behaviortree node. Every bt tick is one step.
func Node(s Stepper, input, output any) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		return ToStatus(s.Step(input, output)), nil
	})
}

// ToStatus maps a step result to a go-behaviortree status.
// A step that did not run counts as a failure.
func ToStatus(status domain.RunningStatus, ran bool) bt.Status {
	if !ran {
		return bt.Failure
	}
	switch status {
	case domain.Executing:
		return bt.Running
	case domain.Finish:
		return bt.Success
	default:
		return bt.Failure
	}
}

// FromStatus maps a go-behaviortree result to a RunningStatus.
// Errors and unknown statuses end the leaf abnormally.
func FromStatus(status bt.Status, err error) domain.RunningStatus {
	if err != nil {
		return domain.ErrorTransition
	}
	switch status {
	case bt.Running:
		return domain.Executing
	case bt.Success:
		return domain.Finish
	default:
		return domain.ErrorTransition
	}
}

// ErrorHandler receives tick errors of wrapped nodes.
type ErrorHandler func(err error)

// Action runs node as a leaf: each Execute ticks it once.
func Action(node bt.Node, onError ErrorHandler) ports.Action {
	return &action{node: node, onError: onError}
}

type action struct {
	node    bt.Node
	onError ErrorHandler
}

func (a *action) Enter(any) {}

func (a *action) Execute(any, any) domain.RunningStatus {
	if a.node == nil {
		return domain.ErrorTransition
	}
	status, err := a.node.Tick()
	if err != nil && a.onError != nil {
		a.onError(fmt.Errorf("go-behaviortree node: %w", err))
	}
	return FromStatus(status, err)
}

func (a *action) Exit(any, domain.RunningStatus) {}
