// Package ast defines the syntax tree produced by the fcad parser: statements
// and scopes forming a tree, and the terms used as their argument values.
package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/fcad/internal/lexer/token"
)

// Node is a tree node: either a *Statement or a *Scope.
type Node interface {
	fmt.Stringer
	Position() token.Pos
	astNode()
}

// Program is the result of parsing one source file.
type Program struct {
	Filename string
	Source   []byte
	// Uses lists the names of the use directives, which have no effect.
	Uses []string
	Body []Node
}

func (program *Program) String() string {
	var sb strings.Builder
	for _, node := range program.Body {
		sb.WriteString(node.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Statements returns every statement of nodes in depth-first order,
// descending into scope children. Modifiers are not included.
func Statements(nodes []Node) []*Statement {
	var result []*Statement
	for _, node := range nodes {
		switch n := node.(type) {
		case *Statement:
			result = append(result, n)
		case *Scope:
			result = append(result, Statements(n.Children)...)
		}
	}
	return result
}

// Scopes returns every scope of nodes in depth-first order.
func Scopes(nodes []Node) []*Scope {
	var result []*Scope
	for _, node := range nodes {
		if scope, ok := node.(*Scope); ok {
			result = append(result, scope)
			result = append(result, Scopes(scope.Children)...)
		}
	}
	return result
}
