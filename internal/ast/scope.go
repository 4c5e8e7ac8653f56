package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/fcad/internal/lexer/token"
)

// Scope combines its children with the operation Name (union, difference,
// intersection, assign, ...). The assignments among Arguments are visible to
// the children. Modifiers apply to the combined result.
type Scope struct {
	Name      string
	Arguments []Term
	Children  []Node
	Modifiers []*Statement
	// Loop is only set on a "for" scope whose range was not known at parse
	// time.
	Loop *Loop
	Pos  token.Pos
}

func (scope *Scope) Position() token.Pos { return scope.Pos }
func (scope *Scope) astNode()            {}

// Assignments returns the bindings the scope introduces.
func (scope *Scope) Assignments() []*Assignment {
	return assignmentsOf(scope.Arguments)
}

func (scope *Scope) String() string {
	var sb strings.Builder
	for _, modifier := range scope.Modifiers {
		sb.WriteString(modifier.String())
		sb.WriteByte(' ')
	}
	if scope.Loop != nil {
		sb.WriteString(scope.Loop.String())
	} else {
		sb.WriteString(scope.Name)
		sb.WriteString(formatArgs(scope.Arguments))
	}
	sb.WriteString(" {")
	for _, child := range scope.Children {
		sb.WriteByte(' ')
		sb.WriteString(child.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Loop is the header of a range-based for loop: Variable takes every value
// of the half-open Range.
type Loop struct {
	Variable string
	Range    *Vector
	Pos      token.Pos
}

func (loop *Loop) String() string {
	return fmt.Sprintf("for (%s = %s)", loop.Variable, loop.Range)
}

// MaxLoopIterations bounds the expansion of a single loop.
const MaxLoopIterations = 100000

// Expand instantiates body once per value of the range, each copy in an
// assign scope binding the loop variable. Both endpoints must be resolved
// integers.
func (loop *Loop) Expand(body []Node) ([]Node, error) {
	from, to, ok := loop.Range.Bounds()
	if !ok {
		return nil, fmt.Errorf("loop range %s must have integer endpoints", loop.Range)
	}
	if to > from && uint64(to-from) > MaxLoopIterations {
		return nil, fmt.Errorf("loop range %s has more than %d iterations", loop.Range, MaxLoopIterations)
	}

	var nodes []Node
	for i := from; i < to; i++ {
		binding := &Assignment{
			Identifier: loop.Variable,
			Value:      NewConstant(NewInteger(i)),
			Pos:        loop.Pos,
		}
		nodes = append(nodes, &Scope{
			Name:      "assign",
			Arguments: []Term{binding},
			Children:  CloneAll(body),
			Pos:       loop.Pos,
		})
	}
	return nodes, nil
}

// Vector is a half-open range [X:Y).
type Vector struct {
	X, Y Term
}

func (v *Vector) String() string {
	return fmt.Sprintf("[%s : %s]", v.X, v.Y)
}

// Bounds returns both endpoints as integers when they are resolved.
func (v *Vector) Bounds() (int64, int64, bool) {
	x, ok := integerOf(v.X)
	if !ok {
		return 0, 0, false
	}
	y, ok := integerOf(v.Y)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func integerOf(t Term) (int64, bool) {
	c, ok := t.(*Constant)
	if !ok {
		return 0, false
	}
	return c.Value.AsInteger()
}
