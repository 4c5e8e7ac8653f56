// Package plan turns a resolved syntax tree into construction instructions
// for a geometry backend: every call is checked against its builtin
// definition and its arguments bound to named parameters.
package plan

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/builtin"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// Op is one construction instruction. Children are only set on
// combinators; Modifiers apply to the result of the op, in order.
type Op struct {
	Kind      builtin.Kind
	Name      string
	Params    []Param
	Modifiers []*Op
	Children  []*Op
	Pos       token.Pos
}

// Param returns the value bound to the parameter name.
func (op *Op) Param(name string) (ast.Value, bool) {
	for _, param := range op.Params {
		if param.Name == name {
			return param.Value, true
		}
	}
	return ast.Value{}, false
}

// Number returns a numeric parameter as float64, or 0.
func (op *Op) Number(name string) float64 {
	value, _ := op.Param(name)
	f, _ := value.AsFloat()
	return f
}

type Builder struct {
	logger zerolog.Logger
	src    []byte
}

func NewBuilder(logger zerolog.Logger, src []byte) *Builder {
	return &Builder{logger: logger, src: src}
}

// Build plans resolved nodes. Failures are semantic errors located at the
// offending call.
func Build(src []byte, nodes []ast.Node) ([]*Op, error) {
	return NewBuilder(zerolog.Nop(), src).Build(nodes)
}

func (b *Builder) Build(nodes []ast.Node) ([]*Op, error) {
	ops := make([]*Op, 0, len(nodes))
	for _, node := range nodes {
		op, err := b.buildNode(node)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (b *Builder) buildNode(node ast.Node) (*Op, error) {
	switch n := node.(type) {
	case *ast.Statement:
		op, err := b.buildCall(n.Name, builtin.PRIMITIVE, n.Arguments, n.Pos)
		if err != nil {
			return nil, err
		}
		if op.Modifiers, err = b.buildModifiers(n.Modifiers); err != nil {
			return nil, err
		}
		return op, nil
	case *ast.Scope:
		if n.Loop != nil {
			return nil, b.errorAt(n.Pos, "for loop %s was not expanded", n.Loop)
		}
		op, err := b.buildCall(n.Name, builtin.COMBINATOR, n.Arguments, n.Pos)
		if err != nil {
			return nil, err
		}
		if op.Modifiers, err = b.buildModifiers(n.Modifiers); err != nil {
			return nil, err
		}
		if op.Children, err = b.Build(n.Children); err != nil {
			return nil, err
		}
		return op, nil
	}
	return nil, fmt.Errorf("unexpected node %T", node)
}

func (b *Builder) buildModifiers(modifiers []*ast.Statement) ([]*Op, error) {
	if len(modifiers) == 0 {
		return nil, nil
	}
	ops := make([]*Op, len(modifiers))
	for i, modifier := range modifiers {
		op, err := b.buildCall(modifier.Name, builtin.MODIFIER, modifier.Arguments, modifier.Pos)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func (b *Builder) buildCall(name string, kind builtin.Kind, args []ast.Term, pos token.Pos) (*Op, error) {
	def, ok := builtin.Lookup(name)
	if !ok {
		return nil, b.errorAt(pos, "unknown %s '%s'", kind, name)
	}
	if def.Kind != kind {
		return nil, b.errorAt(pos, "'%s' is a %s, not a %s", name, def.Kind, kind)
	}

	params, err := Bind(def, args)
	if err != nil {
		semErr := diagnostics.NewSemanticError(err.Error(), diagnostics.Locate(b.src, pos.Offset))
		var bindErr *BindError
		if errors.As(err, &bindErr) {
			semErr.Err = bindErr.Err
		}
		return nil, semErr
	}

	b.logger.Debug().Str("call", name).Int("params", len(params)).Msg("planned")
	return &Op{Kind: def.Kind, Name: name, Params: params, Pos: pos}, nil
}

func (b *Builder) errorAt(pos token.Pos, format string, args ...any) error {
	return diagnostics.NewSemanticError(fmt.Sprintf(format, args...), diagnostics.Locate(b.src, pos.Offset))
}

// Dump converts ops into plain maps and slices for the JSON and YAML
// encoders.
func Dump(ops []*Op) []any {
	result := make([]any, len(ops))
	for i, op := range ops {
		result[i] = dumpOp(op)
	}
	return result
}

func dumpOp(op *Op) map[string]any {
	m := map[string]any{
		op.Kind.String(): op.Name,
	}
	if len(op.Params) > 0 {
		params := make(map[string]any, len(op.Params))
		for _, param := range op.Params {
			params[param.Name] = param.Value.Native()
		}
		m["params"] = params
	}
	if len(op.Modifiers) > 0 {
		m["modifiers"] = Dump(op.Modifiers)
	}
	if op.Kind == builtin.COMBINATOR {
		m["children"] = Dump(op.Children)
	}
	return m
}
