// Package eval reduces postfix calculation stacks. A reduction either
// yields a Constant or, when an operand is still unknown, an
// UnresolvedCalculation to be finished later by the term resolver.
package eval

import (
	"fmt"
	"math"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// Error is an evaluation failure. Pos is nil when no operator or operand
// position is known.
type Error struct {
	Message string
	Pos     *token.Pos
}

func (e *Error) Error() string { return e.Message }

func errorAt(pos token.Pos, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: &pos}
}

// Lookup returns the value bound to a global name.
type Lookup func(name string) (ast.Term, bool)

// Stack collects the operands and operators of one calculation in postfix
// order. Atoms are classified when pushed.
type Stack struct {
	terms  []ast.Term
	lookup Lookup
}

func NewStack(lookup Lookup) *Stack {
	return &Stack{lookup: lookup}
}

func (stack *Stack) Len() int { return len(stack.terms) }

// Terms returns a copy of the pending terms, bottom first.
func (stack *Stack) Terms() []ast.Term {
	terms := make([]ast.Term, len(stack.terms))
	copy(terms, stack.terms)
	return terms
}

func (stack *Stack) Push(term ast.Term) {
	stack.terms = append(stack.terms, term)
}

func (stack *Stack) PushNumber(raw string, pos token.Pos) error {
	value, err := ast.ParseNumber(raw)
	if err != nil {
		return errorAt(pos, "%s", err)
	}
	stack.Push(ast.NewConstant(value))
	return nil
}

// PushIdentifier pushes the mathematical constants PI and E, the bound value
// of a global variable, or a Variable to be resolved later.
func (stack *Stack) PushIdentifier(name string, pos token.Pos) {
	switch name {
	case "PI":
		stack.Push(ast.NewConstant(ast.NewFloat(math.Pi)))
		return
	case "E":
		stack.Push(ast.NewConstant(ast.NewFloat(math.E)))
		return
	}
	if stack.lookup != nil {
		if value, ok := stack.lookup(name); ok && value != nil {
			stack.Push(value)
			return
		}
	}
	stack.Push(&ast.Variable{Name: name, Pos: pos})
}

func (stack *Stack) PushOperator(op token.Kind, pos token.Pos) {
	stack.Push(&ast.Operator{Op: op, Pos: pos})
}

// Reduce consumes the whole stack and returns its value.
func (stack *Stack) Reduce() (ast.Term, error) {
	result, err := Reduce(&stack.terms)
	if err != nil {
		return nil, err
	}
	if len(stack.terms) != 0 {
		return nil, &Error{Message: fmt.Sprintf("malformed calculation: %d dangling terms", len(stack.terms))}
	}
	return result, nil
}

// Reduce pops the top of stack and evaluates it. The right operand of an
// operator is popped first, then the left one.
func Reduce(stack *[]ast.Term) (ast.Term, error) {
	terms := *stack
	if len(terms) == 0 {
		return nil, &Error{Message: "malformed calculation: missing operand"}
	}
	top := terms[len(terms)-1]
	*stack = terms[:len(terms)-1]

	op, ok := top.(*ast.Operator)
	if !ok {
		return top, nil
	}

	if len(*stack) < 2 {
		return nil, errorAt(op.Pos, "malformed calculation: missing operand for '%s'", op.Op)
	}
	right, err := Reduce(stack)
	if err != nil {
		return nil, err
	}
	left, err := Reduce(stack)
	if err != nil {
		return nil, err
	}
	return Apply(left, right, op)
}

// Apply computes left op right, or defers it when either side is unknown.
func Apply(left, right ast.Term, op *ast.Operator) (ast.Term, error) {
	if ast.IsDeferred(left) || ast.IsDeferred(right) {
		return ast.NewUnresolvedCalculation(left, right, op), nil
	}

	l, err := operand(left, op)
	if err != nil {
		return nil, err
	}
	r, err := operand(right, op)
	if err != nil {
		return nil, err
	}

	value, err := arithmetic(l, r, op)
	if err != nil {
		return nil, err
	}
	return ast.NewConstant(value), nil
}

func operand(term ast.Term, op *ast.Operator) (ast.Value, error) {
	constant, ok := term.(*ast.Constant)
	if !ok {
		return ast.Value{}, errorAt(op.Pos, "invalid operand '%s' for operator '%s'", term, op.Op)
	}
	if !constant.Value.IsNumeric() {
		return ast.Value{}, errorAt(op.Pos, "%s operand '%s' for operator '%s', expected number",
			constant.Value.Kind, constant.Value, op.Op)
	}
	return constant.Value, nil
}

func arithmetic(l, r ast.Value, op *ast.Operator) (ast.Value, error) {
	integral := l.Kind == ast.INTEGER && r.Kind == ast.INTEGER
	lf, _ := l.AsFloat()
	rf, _ := r.AsFloat()

	switch op.Op {
	case token.PLUS:
		if integral {
			if sum, ok := addInt(l.IntVal, r.IntVal); ok {
				return ast.NewInteger(sum), nil
			}
		}
		return ast.NewFloat(lf + rf), nil
	case token.MINUS:
		if integral {
			if diff, ok := subInt(l.IntVal, r.IntVal); ok {
				return ast.NewInteger(diff), nil
			}
		}
		return ast.NewFloat(lf - rf), nil
	case token.STAR:
		if integral {
			if product, ok := mulInt(l.IntVal, r.IntVal); ok {
				return ast.NewInteger(product), nil
			}
		}
		return ast.NewFloat(lf * rf), nil
	case token.SLASH:
		if rf == 0 {
			return ast.Value{}, errorAt(op.Pos, "division by zero")
		}
		return ast.NewFloat(lf / rf), nil
	case token.CARET:
		if integral && r.IntVal >= 0 {
			if power, ok := ipow(l.IntVal, r.IntVal); ok {
				return ast.NewInteger(power), nil
			}
		}
		result := math.Pow(lf, rf)
		if math.IsNaN(result) || math.IsInf(result, 0) {
			return ast.Value{}, errorAt(op.Pos, "invalid exponentiation %s ^ %s", l, r)
		}
		return ast.NewFloat(result), nil
	}
	return ast.Value{}, errorAt(op.Pos, "unknown operator '%s'", op.Op)
}

// Integer operations report false on int64 overflow; the caller then falls
// back to float arithmetic.

func addInt(a, b int64) (int64, bool) {
	sum := a + b
	return sum, (b >= 0) == (sum >= a)
}

func subInt(a, b int64) (int64, bool) {
	diff := a - b
	return diff, (b >= 0) == (diff <= a)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	product := a * b
	return product, product/b == a
}

func ipow(base, exp int64) (int64, bool) {
	result := int64(1)
	for {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp == 0 {
			return result, true
		}
		if base, ok = mulInt(base, base); !ok {
			return 0, false
		}
	}
}
