package bevtree_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/dsl"
	"github.com/aretw0/bevtree/pkg/ports"
	"github.com/aretw0/bevtree/pkg/registry"
)

// ExampleNew_library demonstrates how to use bevtree purely as a Go library,
// building the tree with the DSL and binding a custom action.
func ExampleNew_library() {
	// 1. Register host actions next to the built-ins
	reg := registry.NewDefault(nil)
	reg.Register("greet", func(params map[string]any) (ports.Action, error) {
		return ports.Hooks{
			OnEnter: func(any) { fmt.Println("  enter greet") },
			OnExecute: func(any, any) domain.RunningStatus {
				fmt.Println("  hello!")
				return domain.Finish
			},
			OnExit: func(_ any, status domain.RunningStatus) { fmt.Println("  exit greet:", status) },
		}, nil
	})

	// 2. Define the tree using pure Go
	root := dsl.Loop("twice", 2,
		dsl.Sequence("round",
			dsl.Action("greet", "greet"),
			dsl.Action("rest", "succeed"),
		),
	)

	eng, err := bevtree.New("", bevtree.WithDefinition(root.Build()), bevtree.WithRegistry(reg))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Step until the loop completes
	runner := &bevtree.Runner{Output: os.Stdout, MaxSteps: 10}
	last, err := runner.Run(context.Background(), eng, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("done after", last.Step, "steps")
	// Output:
	//   enter greet
	//   hello!
	//   exit greet: finish
	// step 1: executing (twice/round/greet)
	// step 2: executing (twice/round/rest)
	//   enter greet
	//   hello!
	//   exit greet: finish
	// step 3: executing (twice/round/greet)
	// step 4: finish (twice/round/rest)
	// done after 4 steps
}
