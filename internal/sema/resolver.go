// Package sema resolves the deferred parts of a parsed program: variables,
// unresolved calculations and for loops whose range was unknown at parse
// time.
package sema

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/eval"
	"github.com/HicaroD/fcad/internal/lexer/token"
	"github.com/HicaroD/fcad/internal/scope"
	"github.com/HicaroD/fcad/internal/symtab"
)

// ErrUnresolved classifies errors about names bound nowhere.
var ErrUnresolved = errors.New("unresolved term")

type Resolver struct {
	logger  zerolog.Logger
	symbols *symtab.Table
	src     []byte

	root *scope.Scope[ast.Term]
	env  *scope.Scope[ast.Term]
	// resolving holds the globals being resolved, to report cycles.
	resolving map[string]bool
}

func New(symbols *symtab.Table) *Resolver {
	return NewWithLogger(zerolog.Nop(), symbols)
}

func NewWithLogger(logger zerolog.Logger, symbols *symtab.Table) *Resolver {
	if symbols == nil {
		symbols = symtab.New()
	}
	root := scope.New[ast.Term](nil)
	return &Resolver{
		logger:    logger,
		symbols:   symbols,
		root:      root,
		env:       root,
		resolving: map[string]bool{},
	}
}

// SetSource sets the buffer error locations point into.
func (r *Resolver) SetSource(src []byte) {
	r.src = src
}

// Push opens a scope for new bindings.
func (r *Resolver) Push() {
	r.env = r.env.Push()
}

func (r *Resolver) Pop() {
	if r.env.Parent != nil {
		r.env = r.env.Parent
	}
}

// Bind binds name in the innermost scope.
func (r *Resolver) Bind(name string, value ast.Term) error {
	return r.env.Insert(name, value)
}

// LookupVariable returns the innermost binding of v, falling back to the
// global variables of the symbol table.
func (r *Resolver) LookupVariable(v *ast.Variable) (ast.Term, bool) {
	if value, err := r.env.Lookup(v.Name); err == nil {
		return value, true
	}
	return r.symbols.GlobalValue(v.Name)
}

// ResolveTerm returns t with every variable and calculation replaced by its
// value. Boolean expressions become boolean constants.
func (r *Resolver) ResolveTerm(t ast.Term) (ast.Term, error) {
	switch t := t.(type) {
	case *ast.Variable:
		return r.resolveVariable(t)
	case *ast.UnresolvedCalculation:
		return r.Calculate(t)
	case ast.BoolExpr:
		return ast.NewConstant(ast.NewBoolean(t.Eval())), nil
	case *ast.Assignment:
		value, err := r.ResolveTerm(t.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Identifier: t.Identifier, Value: value, Pos: t.Pos}, nil
	}
	return t, nil
}

func (r *Resolver) resolveVariable(v *ast.Variable) (ast.Term, error) {
	if value, err := r.env.Lookup(v.Name); err == nil {
		return value, nil
	}

	value, ok := r.symbols.GlobalValue(v.Name)
	if !ok || value == nil {
		err := r.semanticError(v.Pos, "variable '%s' could not be resolved, expected numerical term", v.Name)
		err.Err = ErrUnresolved
		return nil, err
	}
	return r.resolveGlobal(v, value)
}

// resolveGlobal resolves the value of a global variable outside of any
// local scope.
func (r *Resolver) resolveGlobal(v *ast.Variable, value ast.Term) (ast.Term, error) {
	if !ast.IsDeferred(value) {
		return r.ResolveTerm(value)
	}
	if r.resolving[v.Name] {
		return nil, r.semanticError(v.Pos, "cyclic definition of '%s'", v.Name)
	}
	r.resolving[v.Name] = true
	defer delete(r.resolving, v.Name)

	saved := r.env
	r.env = r.root
	defer func() { r.env = saved }()

	return r.ResolveTerm(value)
}

// Calculate resolves every entry of the stack of u and reduces it again.
func (r *Resolver) Calculate(u *ast.UnresolvedCalculation) (ast.Term, error) {
	stack := make([]ast.Term, 0, len(u.Stack))
	for _, term := range u.Stack {
		resolved, err := r.ResolveTerm(term)
		if err != nil {
			return nil, err
		}
		stack = append(stack, resolved)
	}

	result, err := eval.Reduce(&stack)
	if err != nil {
		var evalErr *eval.Error
		if errors.As(err, &evalErr) {
			pos := positionOf(u)
			if evalErr.Pos != nil {
				pos = *evalErr.Pos
			}
			return nil, r.semanticError(pos, "%s", evalErr.Message)
		}
		return nil, err
	}
	if ast.IsDeferred(result) {
		err := r.semanticError(positionOf(u), "calculation %s could not be resolved", u)
		err.Err = ErrUnresolved
		return nil, err
	}
	return result, nil
}

// Resolve returns a copy of the program body free of deferred terms. Loops
// with a deferred range are expanded.
func (r *Resolver) Resolve(program *ast.Program) ([]ast.Node, error) {
	r.src = program.Source
	r.env = r.root
	return r.resolveNodes(program.Body)
}

func (r *Resolver) resolveNodes(nodes []ast.Node) ([]ast.Node, error) {
	var result []ast.Node
	for _, node := range nodes {
		resolved, err := r.resolveNode(node)
		if err != nil {
			return nil, err
		}
		result = append(result, resolved...)
	}
	return result, nil
}

func (r *Resolver) resolveNode(node ast.Node) ([]ast.Node, error) {
	switch n := node.(type) {
	case *ast.Statement:
		stmt, err := r.resolveStatement(n)
		if err != nil {
			return nil, err
		}
		return []ast.Node{stmt}, nil
	case *ast.Scope:
		if n.Loop != nil {
			return r.resolveLoop(n)
		}
		scope, err := r.resolveScope(n)
		if err != nil {
			return nil, err
		}
		return []ast.Node{scope}, nil
	}
	return nil, fmt.Errorf("unexpected node %T", node)
}

func (r *Resolver) resolveStatement(stmt *ast.Statement) (*ast.Statement, error) {
	args, err := r.resolveArgs(stmt.Arguments)
	if err != nil {
		return nil, err
	}
	modifiers, err := r.resolveModifiers(stmt.Modifiers)
	if err != nil {
		return nil, err
	}
	return &ast.Statement{
		Type:      stmt.Type,
		Name:      stmt.Name,
		Arguments: args,
		Modifiers: modifiers,
		Pos:       stmt.Pos,
	}, nil
}

func (r *Resolver) resolveModifiers(modifiers []*ast.Statement) ([]*ast.Statement, error) {
	if modifiers == nil {
		return nil, nil
	}
	result := make([]*ast.Statement, len(modifiers))
	for i, modifier := range modifiers {
		resolved, err := r.resolveStatement(modifier)
		if err != nil {
			return nil, err
		}
		result[i] = resolved
	}
	return result, nil
}

func (r *Resolver) resolveArgs(args []ast.Term) ([]ast.Term, error) {
	if args == nil {
		return nil, nil
	}
	result := make([]ast.Term, len(args))
	for i, arg := range args {
		resolved, err := r.ResolveTerm(arg)
		if err != nil {
			return nil, err
		}
		result[i] = resolved
	}
	return result, nil
}

// resolveScope resolves the bindings of scope in the enclosing environment,
// then its children with those bindings visible.
func (r *Resolver) resolveScope(s *ast.Scope) (*ast.Scope, error) {
	args, err := r.resolveArgs(s.Arguments)
	if err != nil {
		return nil, err
	}
	modifiers, err := r.resolveModifiers(s.Modifiers)
	if err != nil {
		return nil, err
	}

	r.Push()
	defer r.Pop()
	for _, arg := range args {
		assignment, ok := arg.(*ast.Assignment)
		if !ok {
			continue
		}
		if err := r.Bind(assignment.Identifier, assignment.Value); err != nil {
			return nil, r.semanticError(assignment.Pos, "duplicate binding '%s' in %s", assignment.Identifier, s.Name)
		}
	}

	children, err := r.resolveNodes(s.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Scope{
		Name:      s.Name,
		Arguments: args,
		Children:  children,
		Modifiers: modifiers,
		Pos:       s.Pos,
	}, nil
}

func (r *Resolver) resolveLoop(s *ast.Scope) ([]ast.Node, error) {
	x, err := r.ResolveTerm(s.Loop.Range.X)
	if err != nil {
		return nil, err
	}
	y, err := r.ResolveTerm(s.Loop.Range.Y)
	if err != nil {
		return nil, err
	}

	loop := &ast.Loop{Variable: s.Loop.Variable, Range: &ast.Vector{X: x, Y: y}, Pos: s.Loop.Pos}
	iterations, err := loop.Expand(s.Children)
	if err != nil {
		return nil, r.semanticError(loop.Pos, "%s", err)
	}
	r.logger.Debug().Stringer("loop", loop).Int("iterations", len(iterations)).Msg("expanded for loop")

	if len(s.Modifiers) > 0 {
		union := &ast.Scope{Name: "union", Children: iterations, Modifiers: s.Modifiers, Pos: s.Pos}
		resolved, err := r.resolveScope(union)
		if err != nil {
			return nil, err
		}
		return []ast.Node{resolved}, nil
	}
	return r.resolveNodes(iterations)
}

func (r *Resolver) semanticError(pos token.Pos, format string, args ...any) *diagnostics.SemanticError {
	return diagnostics.NewSemanticError(fmt.Sprintf(format, args...), diagnostics.Locate(r.src, pos.Offset))
}

// positionOf returns the position of the first variable or operator of u.
func positionOf(u *ast.UnresolvedCalculation) token.Pos {
	for _, term := range u.Stack {
		switch t := term.(type) {
		case *ast.Variable:
			return t.Pos
		case *ast.UnresolvedCalculation:
			return positionOf(t)
		}
	}
	for _, term := range u.Stack {
		if op, ok := term.(*ast.Operator); ok {
			return op.Pos
		}
	}
	return token.Pos{}
}
