package precondition

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Snapshotter is implemented by payloads that guard their state (e.g. a blackboard).
// Expr evaluates against the snapshot instead of the payload itself.
type Snapshotter interface {
	Snapshot() map[string]any
}

// Expr is a Condition backed by a compiled expr-lang program.
type Expr struct {
	source  string
	program *vm.Program
	logger  *slog.Logger
}

// NewExpr compiles source into a boolean condition.
// Unknown variables evaluate to nil rather than failing compilation.
func NewExpr(source string, logger *slog.Logger) (*Expr, error) {
	program, err := expr.Compile(source,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile condition %q: %w", source, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Expr{source: source, program: program, logger: logger}, nil
}

// Source returns the expression text.
func (e *Expr) Source() string {
	return e.source
}

// ExternalCondition runs the program against the payload.
// Runtime errors count as false.
func (e *Expr) ExternalCondition(input any) bool {
	out, err := expr.Run(e.program, environment(input))
	if err != nil {
		e.logger.Warn("condition evaluation failed", "expr", e.source, "error", err)
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func environment(input any) any {
	switch v := input.(type) {
	case nil:
		return map[string]any{}
	case Snapshotter:
		return v.Snapshot()
	case map[string]any:
		return v
	}
	t := reflect.TypeOf(input)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct || t.Kind() == reflect.Map {
		return input
	}
	return map[string]any{"input": input}
}
