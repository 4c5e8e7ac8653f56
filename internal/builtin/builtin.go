// Package builtin declares the primitives, modifiers and combining scopes
// known to fcad, with the parameters each one accepts.
package builtin

import (
	"fmt"

	"github.com/HicaroD/fcad/internal/ast"
)

type Kind int

const (
	PRIMITIVE Kind = iota
	MODIFIER
	COMBINATOR
)

func (kind Kind) String() string {
	switch kind {
	case PRIMITIVE:
		return "primitive"
	case MODIFIER:
		return "modifier"
	case COMBINATOR:
		return "combinator"
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

type ParamType int

const (
	NUMBER ParamType = iota
	BOOLEAN
)

func (t ParamType) String() string {
	if t == BOOLEAN {
		return "boolean"
	}
	return "number"
}

// Accepts reports whether v can be bound to a parameter of type t.
func (t ParamType) Accepts(v ast.Value) bool {
	if t == BOOLEAN {
		return v.Kind == ast.BOOLEAN
	}
	return v.IsNumeric()
}

// Param is one parameter. A nil Default makes it required.
type Param struct {
	Name    string
	Aliases []string
	Type    ParamType
	Default *ast.Value
}

// Matches reports whether name is the parameter name or one of its aliases.
func (param *Param) Matches(name string) bool {
	if param.Name == name {
		return true
	}
	for _, alias := range param.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}

func (param *Param) Required() bool { return param.Default == nil }

type Def struct {
	Name   string
	Kind   Kind
	Params []*Param
	// Bindings marks a scope whose named arguments are free variable
	// bindings rather than declared parameters.
	Bindings bool
}

// Param returns the parameter called name, or one of its aliases.
func (def *Def) Param(name string) (*Param, bool) {
	for _, param := range def.Params {
		if param.Matches(name) {
			return param, true
		}
	}
	return nil, false
}

func number(f float64) *ast.Value {
	v := ast.NewFloat(f)
	return &v
}

func integer(i int64) *ast.Value {
	v := ast.NewInteger(i)
	return &v
}

func boolean(b bool) *ast.Value {
	v := ast.NewBoolean(b)
	return &v
}

var defs = []*Def{
	{Name: "circle", Kind: PRIMITIVE, Params: []*Param{
		{Name: "r", Aliases: []string{"radius"}},
		{Name: "$fn", Aliases: []string{"resolution"}, Default: integer(64)},
	}},
	{Name: "rect", Kind: PRIMITIVE, Params: []*Param{
		{Name: "w", Aliases: []string{"width"}},
		{Name: "h", Aliases: []string{"height"}},
		{Name: "center", Type: BOOLEAN, Default: boolean(false)},
	}},
	{Name: "square", Kind: PRIMITIVE, Params: []*Param{
		{Name: "size", Aliases: []string{"s"}},
		{Name: "center", Type: BOOLEAN, Default: boolean(false)},
	}},

	{Name: "translate", Kind: MODIFIER, Params: []*Param{
		{Name: "x", Default: integer(0)},
		{Name: "y", Default: integer(0)},
	}},
	{Name: "rotate", Kind: MODIFIER, Params: []*Param{
		{Name: "a", Aliases: []string{"angle"}},
	}},
	{Name: "scale", Kind: MODIFIER, Params: []*Param{
		{Name: "x", Default: integer(1)},
		{Name: "y", Default: integer(1)},
	}},
	{Name: "simplify", Kind: MODIFIER, Params: []*Param{
		{Name: "tolerance", Aliases: []string{"t"}, Default: number(0.1)},
	}},

	{Name: "union", Kind: COMBINATOR},
	{Name: "difference", Kind: COMBINATOR},
	{Name: "intersection", Kind: COMBINATOR},
	{Name: "assign", Kind: COMBINATOR, Bindings: true},
}

var byName = func() map[string]*Def {
	m := make(map[string]*Def, len(defs))
	for _, def := range defs {
		m[def.Name] = def
	}
	return m
}()

func Lookup(name string) (*Def, bool) {
	def, ok := byName[name]
	return def, ok
}

func IsModifier(name string) bool {
	def, ok := byName[name]
	return ok && def.Kind == MODIFIER
}

// All returns every definition in declaration order.
func All() []*Def {
	return defs
}
