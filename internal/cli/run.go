package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/internal/presentation/tui"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Options
	Steps      int
	Interval   time.Duration
	Continuous bool
	Output     io.Writer
}

// Run steps the tree until it completes (or Steps is reached) and prints a trace.
// The final blackboard is printed after the trace.
func Run(ctx context.Context, opts RunOptions) (bevtree.StepResult, error) {
	session, err := NewSession(opts.Options)
	if err != nil {
		return bevtree.StepResult{}, err
	}
	defer session.Close(context.Background())

	styler := tui.NewStyler(opts.Output)
	runner := &bevtree.Runner{
		Output:     opts.Output,
		Renderer:   stepRenderer(styler),
		MaxSteps:   opts.Steps,
		Interval:   opts.Interval,
		Continuous: opts.Continuous,
	}

	last, err := runner.Run(ctx, session.Engine, session.Board, session.Board)
	if err != nil {
		return last, err
	}

	board, err := json.Marshal(session.Board)
	if err != nil {
		return last, fmt.Errorf("failed to encode blackboard: %w", err)
	}
	fmt.Fprintf(opts.Output, "%s %s\n", styler.Muted("blackboard:"), board)
	return last, nil
}

// stepRenderer colours the step trace: "step N  status  leaf".
func stepRenderer(s *tui.Styler) bevtree.StepRenderer {
	return func(r bevtree.StepResult) string {
		step := s.Muted(fmt.Sprintf("step %d", r.Step))
		if !r.Ran {
			return fmt.Sprintf("%s  %s", step, s.Muted("not runnable"))
		}
		return fmt.Sprintf("%s  %s  %s", step, s.Status(r.Status), s.Node(r.LastActive))
	}
}
