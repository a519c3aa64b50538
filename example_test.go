package bevtree_test

import (
	"fmt"
	"log"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/pkg/adapters/memory"
	"github.com/aretw0/bevtree/pkg/registry"
)

const guardTree = `
name: guard
type: priority
children:
  - name: flee
    type: action
    action: set
    precondition:
      expr: hp < 3
    params:
      key: fled
      value: true
  - name: patrol
    type: action
    action: wait
    params:
      ticks: 1
`

// ExampleNew_memory demonstrates how to use the Engine with an in-memory tree definition.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	loader := memory.NewLoader(map[string]string{"guard": guardTree})

	// Note: We leave dir empty ("") because we are providing a loader.
	engine, err := bevtree.New("", bevtree.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	board := registry.NewBlackboard(map[string]any{"hp": 10})

	status, _ := engine.Step(board, nil)
	fmt.Println(status, engine.LastActiveLeaf())

	// The higher priority branch becomes eligible and preempts the patrol.
	board.Set("hp", 1)
	status, _ = engine.Step(board, nil)
	fmt.Println(status, engine.LastActiveLeaf())

	fled, _ := board.Get("fled")
	fmt.Println("fled:", fled)
	// Output:
	// executing guard/patrol
	// finish guard/flee
	// fled: true
}
