/*
Package bevtree is a behavior tree runtime for game AI, robots and automation agents.

A tree is built from composite nodes (priority and sticky selectors, sequences, parallels,
loops) and leaves bound to host actions. Every node may carry a precondition. The host
drives the root with a three-phase protocol: Evaluate asks whether the node could run now
without committing anything, Tick advances it by one step, and Transition stops whatever is
running so that every leaf that entered also exits.

# Usage

Trees are declared in YAML or JSON (or built with pkg/dsl) and compiled by the Engine.

	package main

	import (
		"log"

		"github.com/aretw0/bevtree"
		"github.com/aretw0/bevtree/pkg/registry"
	)

	func main() {
		// Reads ./trees/guard.yaml
		eng, err := bevtree.New("./trees", bevtree.WithTreeName("guard"))
		if err != nil {
			log.Fatal(err)
		}

		board := registry.NewBlackboard(map[string]any{"hp": 10})
		for i := 0; i < 10; i++ {
			status, ran := eng.Step(board, nil)
			if !ran {
				log.Println("nothing to do")
				break
			}
			log.Println(status, eng.LastActiveLeaf())
		}
	}

# Leaves

Leaves run a ports.Action registered by name in a registry.Registry. The engine calls Enter
once when a run starts, Execute on every tick, and Exit once when the run finishes or is
interrupted by Transition (with domain.ErrorTransition).

# Observability

LifecycleHooks report leaf enters and exits, node ticks and transitions.
pkg/observability turns them into Prometheus metrics, OpenTelemetry spans and log records.
*/
package bevtree
