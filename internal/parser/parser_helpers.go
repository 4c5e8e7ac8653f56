package parser

import (
	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/lexer"
	"github.com/HicaroD/fcad/internal/lexer/token"
	"github.com/HicaroD/fcad/internal/scope"
	"github.com/HicaroD/fcad/internal/symtab"
)

const defaultFilename = "test.fcad"

// ParseSourceForTest parses src and returns the program with the parser
// that produced it.
func ParseSourceForTest(src string) (*ast.Program, *Parser, error) {
	collector := diagnostics.New()
	p := New(collector)
	program, err := p.Parse(defaultFilename, []byte(src))
	return program, p, err
}

// ParseExpressionFrom parses a single argument expression against symbols,
// which may be nil.
func ParseExpressionFrom(input string, symbols *symtab.Table) (ast.Term, error) {
	lex := lexer.New(defaultFilename, []byte(input))
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}

	if symbols == nil {
		symbols = symtab.New()
	}
	p := New(nil)
	p.filename = defaultFilename
	p.src = lex.Source()
	p.cursor = newCursor(tokens)
	p.symbols = symbols
	p.locals = scope.New[token.Pos](nil)

	term, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.cursor.peek(); tok.Kind != token.EOF {
		return nil, p.syntaxError(tok, "unexpected %s after expression", describe(tok))
	}
	return term, nil
}
