// Package parser turns fcad source into an ast.Program. Calculations are
// reduced while parsing; the ones referring to unknown names are kept as
// UnresolvedCalculation terms for the resolver.
package parser

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/builtin"
	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/eval"
	"github.com/HicaroD/fcad/internal/lexer"
	"github.com/HicaroD/fcad/internal/lexer/token"
	"github.com/HicaroD/fcad/internal/scope"
	"github.com/HicaroD/fcad/internal/symtab"
)

type Parser struct {
	logger    zerolog.Logger
	collector *diagnostics.Collector

	filename string
	src      []byte
	cursor   *cursor
	symbols  *symtab.Table
	// locals holds the names bound by the enclosing loops and scopes. They
	// hide global variables of the same name.
	locals *scope.Scope[token.Pos]
}

func New(collector *diagnostics.Collector) *Parser {
	return NewWithLogger(zerolog.Nop(), collector)
}

func NewWithLogger(logger zerolog.Logger, collector *diagnostics.Collector) *Parser {
	if collector == nil {
		collector = diagnostics.New()
	}
	return &Parser{logger: logger, collector: collector}
}

// Symbols returns the symbol table filled by the last parse.
func (p *Parser) Symbols() *symtab.Table {
	return p.symbols
}

func (p *Parser) Parse(filename string, src []byte) (*ast.Program, error) {
	return p.ParseLexer(lexer.New(filename, src))
}

// ParseLexer parses the whole input of lex. Every parse starts with a fresh
// symbol table.
func (p *Parser) ParseLexer(lex *lexer.Lexer) (*ast.Program, error) {
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}

	p.filename = lex.Filename
	p.src = lex.Source()
	p.cursor = newCursor(tokens)
	p.symbols = symtab.New()
	p.locals = scope.New[token.Pos](nil)

	if err := p.seedBuiltins(); err != nil {
		return nil, err
	}

	program := &ast.Program{Filename: p.filename, Source: p.src}
	for p.cursor.nextIs(token.USE) {
		name, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		program.Uses = append(program.Uses, name)
	}

	statements := 0
	for !p.cursor.nextIs(token.EOF) {
		nodes, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, nodes...)
		statements++
	}
	if statements == 0 {
		tok := p.cursor.peek()
		return nil, p.syntaxError(tok, "expected at least one statement, got %s", describe(tok))
	}

	p.logger.Debug().
		Str("file", p.filename).
		Int("nodes", len(program.Body)).
		Int("symbols", p.symbols.Len()).
		Msg("parsed")
	return program, nil
}

func (p *Parser) seedBuiltins() error {
	for _, def := range builtin.All() {
		if _, err := p.symbols.InsertModule(def.Name); err != nil {
			return err
		}
		for _, param := range def.Params {
			if _, err := p.symbols.InsertParameter(param.Name, def.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupGlobal resolves identifiers pushed on a calculation stack. Names
// bound by an enclosing loop or scope stay variables, and so do globals whose
// value is still deferred: the resolver evaluates those at the top level, so
// a global never sees the bindings of the block using it.
func (p *Parser) lookupGlobal(name string) (ast.Term, bool) {
	if _, err := p.locals.Lookup(name); err == nil {
		return nil, false
	}
	value, ok := p.symbols.GlobalValue(name)
	if !ok || ast.IsDeferred(value) {
		return nil, false
	}
	return value, true
}

func (p *Parser) expect(expectedKind token.Kind) (*token.Token, bool) {
	tok := p.cursor.peek()
	if tok.Kind != expectedKind {
		return tok, false
	}
	p.cursor.skip()
	return tok, true
}

func (p *Parser) require(expectedKind token.Kind) (*token.Token, error) {
	tok, ok := p.expect(expectedKind)
	if !ok {
		return nil, p.syntaxError(tok, "expected '%s', got %s", expectedKind, describe(tok))
	}
	return tok, nil
}

func (p *Parser) locate(pos token.Pos) *diagnostics.Location {
	return diagnostics.Locate(p.src, pos.Offset)
}

func (p *Parser) syntaxError(tok *token.Token, format string, args ...any) error {
	return diagnostics.NewSyntaxError(fmt.Sprintf(format, args...), p.locate(tok.Pos))
}

func (p *Parser) semanticError(pos token.Pos, format string, args ...any) error {
	return diagnostics.NewSemanticError(fmt.Sprintf(format, args...), p.locate(pos))
}

// evalError locates an evaluation failure at its operator, or at fallback
// when the evaluator could not tell.
func (p *Parser) evalError(err error, fallback token.Pos) error {
	var evalErr *eval.Error
	if !errors.As(err, &evalErr) {
		return err
	}
	pos := fallback
	if evalErr.Pos != nil {
		pos = *evalErr.Pos
	}
	return p.semanticError(pos, "%s", evalErr.Message)
}

func describe(tok *token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.ID, token.INTEGER_LITERAL, token.FLOAT_LITERAL:
		return fmt.Sprintf("%s '%s'", tok.Kind, tok.Lexeme)
	case token.STRING_LITERAL:
		return fmt.Sprintf("string literal %q", tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Kind)
}
