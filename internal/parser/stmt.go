package parser

import (
	"errors"
	"fmt"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/builtin"
	"github.com/HicaroD/fcad/internal/lexer/token"
	"github.com/HicaroD/fcad/internal/symtab"
)

func (p *Parser) parseUse() (string, error) {
	use := p.cursor.next() // use

	name, err := p.require(token.ID)
	if err != nil {
		return "", err
	}
	if _, err := p.require(token.SEMICOLON); err != nil {
		return "", err
	}

	p.collector.Warn(fmt.Sprintf("use of '%s' has no effect", name.Name()), p.locate(use.Pos))
	p.logger.Debug().Str("name", name.Name()).Msg("use directive")
	return name.Name(), nil
}

// parseStatement parses one statement. Assignments produce no node and a
// for loop over a known range produces one node per iteration.
func (p *Parser) parseStatement() ([]ast.Node, error) {
	start := p.cursor.peek()

	modifiers, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	tok := p.cursor.peek()
	switch tok.Kind {
	case token.FOR:
		return p.parseForLoop(modifiers)
	case token.OPEN_CURLY:
		if len(modifiers) == 0 {
			break
		}
		children, err := p.parseBlock(nil, tok.Pos)
		if err != nil {
			return nil, err
		}
		union := &ast.Scope{Name: "union", Children: children, Modifiers: modifiers, Pos: start.Pos}
		return []ast.Node{union}, nil
	case token.ID:
		if len(modifiers) == 0 && p.cursor.peekN(1).Kind == token.EQUAL {
			return nil, p.parseAssignStatement()
		}
		return p.parseCall(modifiers)
	}

	if len(modifiers) > 0 {
		last := modifiers[len(modifiers)-1]
		return nil, p.syntaxError(tok, "expected primitive call or block after modifier '%s', got %s", last.Name, describe(tok))
	}
	return nil, p.syntaxError(tok, "unexpected %s, expected statement", describe(tok))
}

func (p *Parser) parseModifiers() ([]*ast.Statement, error) {
	var modifiers []*ast.Statement
	for {
		tok := p.cursor.peek()
		if tok.Kind != token.ID || !builtin.IsModifier(tok.Name()) || p.cursor.peekN(1).Kind != token.OPEN_PAREN {
			return modifiers, nil
		}
		p.cursor.skip()

		args, err := p.parseArguments(tok)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, &ast.Statement{
			Type:      ast.MODIFIER,
			Name:      tok.Name(),
			Arguments: args,
			Pos:       tok.Pos,
		})
	}
}

// parseCall parses "name(args);" as a primitive statement, or
// "name(args) { ... }" as a scope.
func (p *Parser) parseCall(modifiers []*ast.Statement) ([]ast.Node, error) {
	name := p.cursor.next()

	args, err := p.parseArguments(name)
	if err != nil {
		return nil, err
	}

	tok := p.cursor.peek()
	switch tok.Kind {
	case token.SEMICOLON:
		p.cursor.skip()
		stmt := &ast.Statement{
			Type:      ast.PRIMITIVE,
			Name:      name.Name(),
			Arguments: args,
			Modifiers: modifiers,
			Pos:       name.Pos,
		}
		p.logger.Debug().Str("call", name.Name()).Int("args", len(args)).Msg("primitive call")
		return []ast.Node{stmt}, nil
	case token.OPEN_CURLY:
		var bindings []string
		for _, arg := range args {
			if assignment, ok := arg.(*ast.Assignment); ok {
				bindings = append(bindings, assignment.Identifier)
			}
		}
		children, err := p.parseBlock(bindings, name.Pos)
		if err != nil {
			return nil, err
		}
		scope := &ast.Scope{
			Name:      name.Name(),
			Arguments: args,
			Children:  children,
			Modifiers: modifiers,
			Pos:       name.Pos,
		}
		p.logger.Debug().Str("scope", name.Name()).Int("children", len(children)).Msg("scope")
		return []ast.Node{scope}, nil
	}
	return nil, p.syntaxError(tok, "expected ';' or '{' after call to '%s', got %s", name.Name(), describe(tok))
}

// parseBlock parses "{ statement* }". The names in bindings are local to
// the block.
func (p *Parser) parseBlock(bindings []string, pos token.Pos) ([]ast.Node, error) {
	if _, err := p.require(token.OPEN_CURLY); err != nil {
		return nil, err
	}

	outer := p.locals
	p.locals = outer.Push()
	defer func() { p.locals = outer }()
	for _, name := range bindings {
		// repeated names are reported when the scope is resolved
		_ = p.locals.Insert(name, pos)
	}

	var children []ast.Node
	for !p.cursor.nextIs(token.CLOSE_CURLY) {
		if p.cursor.nextIs(token.EOF) {
			return nil, p.syntaxError(p.cursor.peek(), "expected '}', got end of file")
		}
		nodes, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, nodes...)
	}
	p.cursor.skip() // }
	return children, nil
}

func (p *Parser) parseArguments(callee *token.Token) ([]ast.Term, error) {
	if _, err := p.require(token.OPEN_PAREN); err != nil {
		return nil, err
	}

	var args []ast.Term
	for !p.cursor.nextIs(token.CLOSE_PAREN) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.cursor.nextIs(token.COMMA) {
			p.cursor.skip()
			continue
		}
		if !p.cursor.nextIs(token.CLOSE_PAREN) {
			tok := p.cursor.peek()
			return nil, p.syntaxError(tok, "expected ',' or ')' in arguments of '%s', got %s", callee.Name(), describe(tok))
		}
	}
	p.cursor.skip() // )
	return args, nil
}

func (p *Parser) parseArgument() (ast.Term, error) {
	if p.cursor.nextIs(token.ID) && p.cursor.peekN(1).Kind == token.EQUAL {
		id := p.cursor.next()
		p.cursor.skip() // =

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Identifier: id.Name(), Value: value, Pos: id.Pos}, nil
	}
	return p.parseExpression()
}

// parseAssignStatement binds a global variable. Nothing is added to the
// tree.
func (p *Parser) parseAssignStatement() error {
	id := p.cursor.next()
	p.cursor.skip() // =

	value, err := p.parseExpression()
	if err != nil {
		return err
	}
	if _, err := p.require(token.SEMICOLON); err != nil {
		return err
	}

	if _, err := p.symbols.InsertGlobalVar(id.Name(), value); err != nil {
		var redefinition *symtab.RedefinitionError
		if errors.As(err, &redefinition) {
			return p.semanticError(id.Pos, "%s", redefinition)
		}
		return err
	}

	p.logger.Debug().Str("name", id.Name()).Stringer("value", value).Msg("assign")
	return nil
}
