package precondition

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Lookup resolves a named condition registered on the host.
type Lookup func(name string) (Condition, bool)

// Compile turns a declarative condition into a Condition.
// A nil definition compiles to nil (no precondition).
func Compile(def *domain.Condition, lookup Lookup, logger *slog.Logger) (Condition, error) {
	if def == nil {
		return nil, nil
	}
	return compile(*def, lookup, logger)
}

func compile(def domain.Condition, lookup Lookup, logger *slog.Logger) (Condition, error) {
	switch {
	case def.Const != nil:
		if *def.Const {
			return True{}, nil
		}
		return False{}, nil
	case def.Not != nil:
		operand, err := compile(*def.Not, lookup, logger)
		if err != nil {
			return nil, err
		}
		return NotExpr{Operand: operand}, nil
	case def.And != nil:
		return fold("and", def.And, lookup, logger, func(l, r Condition) Condition { return AndExpr{l, r} })
	case def.Or != nil:
		return fold("or", def.Or, lookup, logger, func(l, r Condition) Condition { return OrExpr{l, r} })
	case def.Xor != nil:
		return fold("xor", def.Xor, lookup, logger, func(l, r Condition) Condition { return XorExpr{l, r} })
	case def.Expr != "":
		return NewExpr(def.Expr, logger)
	case def.Ref != "":
		if lookup == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCondition, def.Ref)
		}
		c, ok := lookup(def.Ref)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCondition, def.Ref)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: empty condition", domain.ErrNilOperand)
	}
}

// fold combines two or more operands left to right into binary operators.
func fold(op string, defs []domain.Condition, lookup Lookup, logger *slog.Logger, join func(l, r Condition) Condition) (Condition, error) {
	if len(defs) < 2 {
		return nil, fmt.Errorf("%w: %s needs at least two operands, got %d", domain.ErrNilOperand, op, len(defs))
	}
	acc, err := compile(defs[0], lookup, logger)
	if err != nil {
		return nil, err
	}
	for _, d := range defs[1:] {
		next, err := compile(d, lookup, logger)
		if err != nil {
			return nil, err
		}
		acc = join(acc, next)
	}
	return acc, nil
}
