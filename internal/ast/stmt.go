package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/fcad/internal/lexer/token"
)

type StatementType int

const (
	PRIMITIVE StatementType = iota
	MODIFIER
)

func (t StatementType) String() string {
	switch t {
	case PRIMITIVE:
		return "primitive"
	case MODIFIER:
		return "modifier"
	}
	return fmt.Sprintf("StatementType(%d)", int(t))
}

// Statement is a primitive call such as circle(r=1), or a modifier such as
// translate(x=2) attached to a primitive or a scope.
type Statement struct {
	Type      StatementType
	Name      string
	Arguments []Term
	Modifiers []*Statement
	Pos       token.Pos
}

func (stmt *Statement) Position() token.Pos { return stmt.Pos }
func (stmt *Statement) astNode()            {}

func (stmt *Statement) String() string {
	var sb strings.Builder
	for _, modifier := range stmt.Modifiers {
		sb.WriteString(modifier.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(stmt.Name)
	sb.WriteString(formatArgs(stmt.Arguments))
	if stmt.Type == PRIMITIVE {
		sb.WriteByte(';')
	}
	return sb.String()
}

// Assignments returns the named arguments of stmt.
func (stmt *Statement) Assignments() []*Assignment {
	return assignmentsOf(stmt.Arguments)
}

func formatArgs(args []Term) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func assignmentsOf(args []Term) []*Assignment {
	var result []*Assignment
	for _, arg := range args {
		if assignment, ok := arg.(*Assignment); ok {
			result = append(result, assignment)
		}
	}
	return result
}
