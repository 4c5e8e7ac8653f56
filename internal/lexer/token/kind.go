package token

import "fmt"

type Kind int

const (
	// EOF
	EOF Kind = iota
	INVALID

	// Identifier
	ID

	// Literals
	INTEGER_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	TRUE_BOOL_LITERAL
	FALSE_BOOL_LITERAL

	// Keywords
	USE
	FOR
	NOT
	AND
	OR

	// (
	OPEN_PAREN
	// )
	CLOSE_PAREN

	// {
	OPEN_CURLY
	// }
	CLOSE_CURLY

	// [
	OPEN_BRACKET
	// ]
	CLOSE_BRACKET

	// ,
	COMMA
	// ;
	SEMICOLON
	// :
	COLON
	// =
	EQUAL

	// +
	PLUS
	// -
	MINUS
	// *
	STAR
	// /
	SLASH
	// ^
	CARET
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"use": USE,
	"for": FOR,
	"not": NOT,
	"and": AND,
	"or":  OR,

	"true":  TRUE_BOOL_LITERAL,
	"false": FALSE_BOOL_LITERAL,
}

var LITERAL_KIND map[Kind]bool = map[Kind]bool{
	INTEGER_LITERAL:    true,
	FLOAT_LITERAL:      true,
	STRING_LITERAL:     true,
	TRUE_BOOL_LITERAL:  true,
	FALSE_BOOL_LITERAL: true,
}

var ARITHMETIC_OP map[Kind]bool = map[Kind]bool{
	PLUS:  true,
	MINUS: true,
	STAR:  true,
	SLASH: true,
	CARET: true,
}

func (kind Kind) IsLiteral() bool {
	_, ok := LITERAL_KIND[kind]
	return ok
}

func (kind Kind) IsNumber() bool {
	return kind == INTEGER_LITERAL || kind == FLOAT_LITERAL
}

func (kind Kind) IsBool() bool {
	return kind == TRUE_BOOL_LITERAL || kind == FALSE_BOOL_LITERAL
}

func (kind Kind) IsArithmeticOp() bool {
	_, ok := ARITHMETIC_OP[kind]
	return ok
}

func (kind Kind) String() string {
	switch kind {
	case EOF:
		return "end of file"
	case INVALID:
		return "INVALID"
	case ID:
		return "identifier"
	case INTEGER_LITERAL:
		return "integer literal"
	case FLOAT_LITERAL:
		return "float literal"
	case STRING_LITERAL:
		return "string literal"
	case TRUE_BOOL_LITERAL:
		return "true"
	case FALSE_BOOL_LITERAL:
		return "false"
	case USE:
		return "use"
	case FOR:
		return "for"
	case NOT:
		return "not"
	case AND:
		return "and"
	case OR:
		return "or"
	case OPEN_PAREN:
		return "("
	case CLOSE_PAREN:
		return ")"
	case OPEN_CURLY:
		return "{"
	case CLOSE_CURLY:
		return "}"
	case OPEN_BRACKET:
		return "["
	case CLOSE_BRACKET:
		return "]"
	case COMMA:
		return ","
	case SEMICOLON:
		return ";"
	case COLON:
		return ":"
	case EQUAL:
		return "="
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case CARET:
		return "^"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}
