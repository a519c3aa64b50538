// Package precondition implements the boolean gate expressions attached to tree nodes.
//
// Expressions are plain values: operators hold their operands directly, so a
// whole expression is released with the node that owns it.
package precondition

import (
	"fmt"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Condition is a boolean expression evaluated against the tree payload.
type Condition interface {
	ExternalCondition(input any) bool
}

// True always holds.
type True struct{}

func (True) ExternalCondition(any) bool { return true }

// False never holds.
type False struct{}

func (False) ExternalCondition(any) bool { return false }

// NotExpr negates its operand.
type NotExpr struct {
	Operand Condition
}

func (c NotExpr) ExternalCondition(input any) bool {
	return !c.Operand.ExternalCondition(input)
}

// AndExpr holds when both operands hold. Right is skipped when Left fails.
type AndExpr struct {
	Left, Right Condition
}

func (c AndExpr) ExternalCondition(input any) bool {
	return c.Left.ExternalCondition(input) && c.Right.ExternalCondition(input)
}

// OrExpr holds when either operand holds. Right is skipped when Left holds.
type OrExpr struct {
	Left, Right Condition
}

func (c OrExpr) ExternalCondition(input any) bool {
	return c.Left.ExternalCondition(input) || c.Right.ExternalCondition(input)
}

// XorExpr holds when exactly one operand holds. Both operands are always evaluated.
type XorExpr struct {
	Left, Right Condition
}

func (c XorExpr) ExternalCondition(input any) bool {
	l := c.Left.ExternalCondition(input)
	r := c.Right.ExternalCondition(input)
	return l != r
}

// Func adapts a plain predicate to a Condition.
type Func func(input any) bool

func (f Func) ExternalCondition(input any) bool {
	return f(input)
}

// Not builds a NotExpr. It panics if the operand is nil.
func Not(c Condition) Condition {
	mustOperands("not", c)
	return NotExpr{Operand: c}
}

// And builds an AndExpr. It panics if an operand is nil.
func And(l, r Condition) Condition {
	mustOperands("and", l, r)
	return AndExpr{Left: l, Right: r}
}

// Or builds an OrExpr. It panics if an operand is nil.
func Or(l, r Condition) Condition {
	mustOperands("or", l, r)
	return OrExpr{Left: l, Right: r}
}

// Xor builds a XorExpr. It panics if an operand is nil.
func Xor(l, r Condition) Condition {
	mustOperands("xor", l, r)
	return XorExpr{Left: l, Right: r}
}

func mustOperands(op string, operands ...Condition) {
	for i, c := range operands {
		if c == nil {
			panic(fmt.Errorf("%w: %s operand %d is nil", domain.ErrNilOperand, op, i))
		}
	}
}
