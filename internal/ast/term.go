package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/fcad/internal/lexer/token"
)

// Term is an argument value, or an entry of a calculation stack.
type Term interface {
	fmt.Stringer
	termNode()
}

// Constant is a resolved value.
type Constant struct {
	Value Value
}

func NewConstant(v Value) *Constant { return &Constant{Value: v} }

func (c *Constant) String() string { return c.Value.String() }
func (c *Constant) termNode()      {}

// Variable is an identifier whose value was unknown when it was parsed.
type Variable struct {
	Name string
	Pos  token.Pos
}

func (v *Variable) String() string { return v.Name }
func (v *Variable) termNode()      {}

type Operator struct {
	Op  token.Kind
	Pos token.Pos
}

func (o *Operator) String() string { return o.Op.String() }
func (o *Operator) termNode()      {}

// UnresolvedCalculation is an arithmetic operation that referenced a
// Variable or another UnresolvedCalculation. Stack is in postfix order:
// left operand, right operand, operator.
type UnresolvedCalculation struct {
	Stack []Term
}

func NewUnresolvedCalculation(left, right Term, op *Operator) *UnresolvedCalculation {
	return &UnresolvedCalculation{Stack: []Term{left, right, op}}
}

func (u *UnresolvedCalculation) String() string {
	if len(u.Stack) == 3 {
		return fmt.Sprintf("(%s %s %s)", u.Stack[0], u.Stack[2], u.Stack[1])
	}
	parts := make([]string, len(u.Stack))
	for i, term := range u.Stack {
		parts[i] = term.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
func (u *UnresolvedCalculation) termNode() {}

// Variables lists the names of the variables referenced by u, recursively.
func (u *UnresolvedCalculation) Variables() []string {
	var names []string
	for _, term := range u.Stack {
		switch t := term.(type) {
		case *Variable:
			names = append(names, t.Name)
		case *UnresolvedCalculation:
			names = append(names, t.Variables()...)
		}
	}
	return names
}

// Assignment binds Identifier to Value, either as a named call argument or as
// a scope binding.
type Assignment struct {
	Identifier string
	Value      Term
	Pos        token.Pos
}

func (a *Assignment) String() string { return a.Identifier + " = " + a.Value.String() }
func (a *Assignment) termNode()      {}

// IsDeferred reports whether t still needs the term resolver.
func IsDeferred(t Term) bool {
	switch t.(type) {
	case *Variable, *UnresolvedCalculation:
		return true
	}
	return false
}
