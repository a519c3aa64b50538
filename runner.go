package bevtree

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/bevtree/pkg/domain"
)

// StepResult describes one driver step.
type StepResult struct {
	// Step counts engine steps since the last Reset; Runner numbers steps within its own run.
	Step       int
	Status     domain.RunningStatus
	Ran        bool
	Active     string
	LastActive string
}

// StepRenderer formats a step for display.
// This allows for coloured output without coupling the core package to a terminal library.
type StepRenderer func(StepResult) string

// Runner handles the driver loop of an Engine using the provided output.
// This allows for easy testing and integration with different frontends (CLI, server).
type Runner struct {
	// Output receives one line per step. Nil disables the trace.
	Output io.Writer
	// Renderer formats each line; nil uses DefaultStepRenderer.
	Renderer StepRenderer
	// MaxSteps bounds the loop; zero means no bound.
	MaxSteps int
	// Interval sleeps between steps.
	Interval time.Duration
	// Continuous keeps stepping after the root completes.
	Continuous bool
}

// DefaultStepRenderer prints "step N: status (leaf)".
func DefaultStepRenderer(r StepResult) string {
	if !r.Ran {
		return fmt.Sprintf("step %d: not runnable", r.Step)
	}
	return fmt.Sprintf("step %d: %s (%s)", r.Step, r.Status, r.LastActive)
}

// Run steps engine until the root completes, is not runnable, MaxSteps is reached or ctx is done.
// It returns the last step.
func (r *Runner) Run(ctx context.Context, engine *Engine, input, output any) (StepResult, error) {
	render := r.Renderer
	if render == nil {
		render = DefaultStepRenderer
	}

	var last StepResult
	for i := 1; r.MaxSteps == 0 || i <= r.MaxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		last = engine.Advance(input, output)
		last.Step = i
		if r.Output != nil {
			fmt.Fprintln(r.Output, render(last))
		}

		if !last.Ran {
			return last, nil
		}
		if last.Status.Done() && !r.Continuous {
			return last, nil
		}

		if r.Interval > 0 {
			select {
			case <-ctx.Done():
				return last, ctx.Err()
			case <-time.After(r.Interval):
			}
		}
	}
	return last, nil
}
