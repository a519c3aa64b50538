package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/bevtree/pkg/domain"
	playground "github.com/go-playground/validator/v10"
)

// ValidationError locates one problem inside a tree definition.
type ValidationError struct {
	Path   string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidationErrors is the list of every problem found in a definition.
// It matches domain.ErrInvalidDefinition under errors.Is.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

func (errs ValidationErrors) Unwrap() error {
	return domain.ErrInvalidDefinition
}

// Validator checks tree definitions before they are compiled.
type Validator struct {
	validate *playground.Validate
	actions  func(name string) bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithKnownActions makes leaves referencing an action outside names invalid.
func WithKnownActions(names []string) Option {
	return func(v *Validator) {
		known := make(map[string]bool, len(names))
		for _, n := range names {
			known[n] = true
		}
		v.actions = func(name string) bool { return known[name] }
	}
}

// New creates a validator.
func New(opts ...Option) *Validator {
	v := &Validator{validate: playground.New()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks field constraints and tree structure. It returns ValidationErrors or nil.
func (v *Validator) Validate(root *domain.Node) error {
	if root == nil {
		return ValidationErrors{{Path: "<root>", Reason: "empty definition"}}
	}

	var errs ValidationErrors
	if err := v.validate.Struct(root); err != nil {
		var fieldErrs playground.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Path: fe.Namespace(), Reason: describeTag(fe)})
		}
	}

	root.Walk(func(path string, n *domain.Node) bool {
		errs = append(errs, v.checkNode(path, n)...)
		return true
	})

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks root with a default validator.
func Validate(root *domain.Node) error {
	return New().Validate(root)
}

func (v *Validator) checkNode(path string, n *domain.Node) []ValidationError {
	var errs []ValidationError
	add := func(format string, args ...any) {
		errs = append(errs, ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)})
	}

	switch n.Type {
	case domain.NodeTypeAction:
		if n.Action == "" {
			add("action node without an action name")
		} else if v.actions != nil && !v.actions(n.Action) {
			add("unknown action %q", n.Action)
		}
		if len(n.Children) > 0 {
			add("action node cannot have children")
		}
	case domain.NodeTypeLoop:
		if len(n.Children) != 1 {
			add("loop needs exactly one child, got %d", len(n.Children))
		}
	}
	if n.Type != domain.NodeTypeAction && n.Action != "" {
		add("%s node cannot reference action %q", n.Type, n.Action)
	}
	if n.Type != domain.NodeTypeParallel && n.Policy != "" {
		add("policy only applies to parallel nodes")
	}
	if n.Type != domain.NodeTypeLoop && n.Count != nil {
		add("count only applies to loop nodes")
	}

	if n.Precondition != nil {
		for _, reason := range checkCondition(n.Precondition) {
			add("precondition: %s", reason)
		}
	}
	return errs
}

func checkCondition(c *domain.Condition) []string {
	set := 0
	for _, present := range []bool{
		c.Const != nil, c.Not != nil, c.And != nil, c.Or != nil, c.Xor != nil, c.Expr != "", c.Ref != "",
	} {
		if present {
			set++
		}
	}
	switch {
	case set == 0:
		return []string{"empty condition"}
	case set > 1:
		return []string{"condition sets more than one operator"}
	}

	var reasons []string
	operands := func(op string, list []domain.Condition) {
		if len(list) < 2 {
			reasons = append(reasons, fmt.Sprintf("%s needs at least two operands", op))
		}
		for i := range list {
			reasons = append(reasons, checkCondition(&list[i])...)
		}
	}
	switch {
	case c.Not != nil:
		reasons = append(reasons, checkCondition(c.Not)...)
	case c.And != nil:
		operands("and", c.And)
	case c.Or != nil:
		operands("or", c.Or)
	case c.Xor != nil:
		operands("xor", c.Xor)
	}
	return reasons
}

func describeTag(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("exceeds the limit of %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
