package parser

import (
	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/eval"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// parseExpression parses a string literal, a boolean expression or a
// calculation.
func (p *Parser) parseExpression() (ast.Term, error) {
	tok := p.cursor.peek()
	if tok.Kind == token.STRING_LITERAL {
		p.cursor.skip()
		return ast.NewConstant(ast.NewString(string(tok.Lexeme))), nil
	}
	if p.startsBoolExpr() {
		return p.parseBoolExpr()
	}
	return p.parseCalculation()
}

// startsBoolExpr looks past opening parentheses for a boolean literal or
// "not".
func (p *Parser) startsBoolExpr() bool {
	for n := 0; ; n++ {
		switch p.cursor.peekN(n).Kind {
		case token.OPEN_PAREN:
			continue
		case token.TRUE_BOOL_LITERAL, token.FALSE_BOOL_LITERAL, token.NOT:
			return true
		default:
			return false
		}
	}
}

func (p *Parser) parseBoolExpr() (ast.BoolExpr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.BoolExpr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.cursor.nextIs(token.OR) {
		return first, nil
	}

	or := &ast.BoolOr{Args: []ast.BoolExpr{first}}
	for p.cursor.nextIs(token.OR) {
		p.cursor.skip()
		arg, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		or.Args = append(or.Args, arg)
	}
	return or, nil
}

func (p *Parser) parseAnd() (ast.BoolExpr, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.cursor.nextIs(token.AND) {
		return first, nil
	}

	and := &ast.BoolAnd{Args: []ast.BoolExpr{first}}
	for p.cursor.nextIs(token.AND) {
		p.cursor.skip()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		and.Args = append(and.Args, arg)
	}
	return and, nil
}

func (p *Parser) parseNot() (ast.BoolExpr, error) {
	tok := p.cursor.peek()
	switch tok.Kind {
	case token.NOT:
		p.cursor.skip()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.BoolNot{Arg: arg}, nil
	case token.TRUE_BOOL_LITERAL, token.FALSE_BOOL_LITERAL:
		p.cursor.skip()
		return ast.NewBoolOperand(tok.Kind.String()), nil
	case token.OPEN_PAREN:
		p.cursor.skip()
		expr, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.syntaxError(tok, "unexpected %s, expected boolean operand", describe(tok))
}

// parseCalculation parses one calculation onto a fresh stack and reduces
// it.
func (p *Parser) parseCalculation() (ast.Term, error) {
	start := p.cursor.peek()

	stack := eval.NewStack(p.lookupGlobal)
	if err := p.parseSum(stack); err != nil {
		return nil, err
	}

	result, err := stack.Reduce()
	if err != nil {
		return nil, p.evalError(err, start.Pos)
	}
	return result, nil
}

func (p *Parser) parseSum(stack *eval.Stack) error {
	if err := p.parseProduct(stack); err != nil {
		return err
	}
	for p.cursor.nextIs(token.PLUS) || p.cursor.nextIs(token.MINUS) {
		op := p.cursor.next()
		if err := p.parseProduct(stack); err != nil {
			return err
		}
		stack.PushOperator(op.Kind, op.Pos)
	}
	return nil
}

func (p *Parser) parseProduct(stack *eval.Stack) error {
	if err := p.parsePower(stack); err != nil {
		return err
	}
	for p.cursor.nextIs(token.STAR) || p.cursor.nextIs(token.SLASH) {
		op := p.cursor.next()
		if err := p.parsePower(stack); err != nil {
			return err
		}
		stack.PushOperator(op.Kind, op.Pos)
	}
	return nil
}

// parsePower recurses on the right operand, so ^ is right-associative.
func (p *Parser) parsePower(stack *eval.Stack) error {
	if err := p.parseAtom(stack); err != nil {
		return err
	}
	if !p.cursor.nextIs(token.CARET) {
		return nil
	}
	op := p.cursor.next()
	if err := p.parsePower(stack); err != nil {
		return err
	}
	stack.PushOperator(op.Kind, op.Pos)
	return nil
}

func (p *Parser) parseAtom(stack *eval.Stack) error {
	tok := p.cursor.peek()
	switch tok.Kind {
	case token.INTEGER_LITERAL, token.FLOAT_LITERAL:
		p.cursor.skip()
		return p.pushNumber(stack, string(tok.Lexeme), tok)
	case token.ID:
		p.cursor.skip()
		stack.PushIdentifier(tok.Name(), tok.Pos)
		return nil
	case token.OPEN_PAREN:
		p.cursor.skip()
		if err := p.parseSum(stack); err != nil {
			return err
		}
		_, err := p.require(token.CLOSE_PAREN)
		return err
	case token.PLUS, token.MINUS:
		p.cursor.skip()

		// a sign glued to a number is part of the literal
		next := p.cursor.peek()
		if next.Kind.IsNumber() && next.Pos.Offset == tok.Pos.Offset+1 {
			p.cursor.skip()
			lexeme := string(next.Lexeme)
			if tok.Kind == token.MINUS {
				lexeme = "-" + lexeme
			}
			return p.pushNumber(stack, lexeme, tok)
		}
		if tok.Kind == token.PLUS {
			return p.parseAtom(stack)
		}

		stack.Push(ast.NewConstant(ast.NewInteger(0)))
		if err := p.parseAtom(stack); err != nil {
			return err
		}
		stack.PushOperator(token.MINUS, tok.Pos)
		return nil
	}
	return p.syntaxError(tok, "unexpected %s, expected number, identifier or '('", describe(tok))
}

func (p *Parser) pushNumber(stack *eval.Stack, lexeme string, tok *token.Token) error {
	if err := stack.PushNumber(lexeme, tok.Pos); err != nil {
		return p.evalError(err, tok.Pos)
	}
	return nil
}
