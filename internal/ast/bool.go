package ast

import "strings"

// BoolExpr is a boolean expression tree. String gives back the source
// spelling.
type BoolExpr interface {
	Term
	Eval() bool
}

type BoolOperand struct {
	Label string
	Value bool
}

func NewBoolOperand(label string) *BoolOperand {
	return &BoolOperand{
		Label: label,
		Value: strings.ToLower(strings.TrimSpace(label)) == "true",
	}
}

func (b *BoolOperand) Eval() bool     { return b.Value }
func (b *BoolOperand) String() string { return b.Label }
func (b *BoolOperand) termNode()      {}

type BoolAnd struct {
	Args []BoolExpr
}

func (b *BoolAnd) Eval() bool {
	for _, arg := range b.Args {
		if !arg.Eval() {
			return false
		}
	}
	return true
}
func (b *BoolAnd) String() string { return joinBool(b.Args, " and ") }
func (b *BoolAnd) termNode()      {}

type BoolOr struct {
	Args []BoolExpr
}

func (b *BoolOr) Eval() bool {
	for _, arg := range b.Args {
		if arg.Eval() {
			return true
		}
	}
	return false
}
func (b *BoolOr) String() string { return joinBool(b.Args, " or ") }
func (b *BoolOr) termNode()      {}

type BoolNot struct {
	Arg BoolExpr
}

func (b *BoolNot) Eval() bool     { return !b.Arg.Eval() }
func (b *BoolNot) String() string { return "not " + b.Arg.String() }
func (b *BoolNot) termNode()      {}

func joinBool(args []BoolExpr, sep string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
