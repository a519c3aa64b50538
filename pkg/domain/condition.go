package domain

import "strings"

// Condition is the declarative form of a precondition expression.
// Exactly one field is expected to be set.
type Condition struct {
	// Const is a constant true/false.
	Const *bool `json:"const,omitempty" yaml:"const,omitempty" mapstructure:"const"`

	Not *Condition  `json:"not,omitempty" yaml:"not,omitempty" mapstructure:"not"`
	And []Condition `json:"and,omitempty" yaml:"and,omitempty" mapstructure:"and"`
	Or  []Condition `json:"or,omitempty" yaml:"or,omitempty" mapstructure:"or"`
	Xor []Condition `json:"xor,omitempty" yaml:"xor,omitempty" mapstructure:"xor"`

	// Expr is an expr-lang boolean expression evaluated against the payload.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty" mapstructure:"expr"`

	// Ref names a condition registered on the host.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty" mapstructure:"ref"`
}

// Bool returns a pointer to b, for building constant conditions.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to i, for loop counts.
func Int(i int) *int {
	return &i
}

// String renders the condition in a compact infix form, e.g. "(hp < 3 and not cornered)".
func (c Condition) String() string {
	switch {
	case c.Const != nil:
		if *c.Const {
			return "true"
		}
		return "false"
	case c.Not != nil:
		return "not " + c.Not.String()
	case c.And != nil:
		return joinConditions(c.And, " and ")
	case c.Or != nil:
		return joinConditions(c.Or, " or ")
	case c.Xor != nil:
		return joinConditions(c.Xor, " xor ")
	case c.Expr != "":
		return c.Expr
	case c.Ref != "":
		return c.Ref
	default:
		return "<empty>"
	}
}

func joinConditions(list []Condition, sep string) string {
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
