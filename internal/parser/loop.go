package parser

import (
	"fmt"

	"github.com/HicaroD/fcad/internal/ast"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// parseForLoop parses "for (i = [x : y]) { ... }". A range known at parse
// time is expanded right away into one assign scope per value; otherwise a
// "for" scope carrying the loop header is left for the resolver.
func (p *Parser) parseForLoop(modifiers []*ast.Statement) ([]ast.Node, error) {
	forTok := p.cursor.next() // for

	if _, err := p.require(token.OPEN_PAREN); err != nil {
		return nil, err
	}
	variable, err := p.require(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.EQUAL); err != nil {
		return nil, err
	}
	vector, err := p.parseVector()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.CLOSE_PAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock([]string{variable.Name()}, variable.Pos)
	if err != nil {
		return nil, err
	}

	loop := &ast.Loop{Variable: variable.Name(), Range: vector, Pos: forTok.Pos}
	if ast.IsDeferred(vector.X) || ast.IsDeferred(vector.Y) {
		p.logger.Debug().Stringer("loop", loop).Msg("deferred for loop")
		deferred := &ast.Scope{
			Name:      "for",
			Children:  body,
			Modifiers: modifiers,
			Loop:      loop,
			Pos:       forTok.Pos,
		}
		return []ast.Node{deferred}, nil
	}

	iterations, err := loop.Expand(body)
	if err != nil {
		return nil, p.semanticError(forTok.Pos, "%s", err)
	}
	if len(iterations) == 0 {
		p.collector.Warn(fmt.Sprintf("for loop over empty range %s", vector), p.locate(forTok.Pos))
	}
	p.logger.Debug().Stringer("loop", loop).Int("iterations", len(iterations)).Msg("for loop")

	if len(modifiers) > 0 {
		union := &ast.Scope{Name: "union", Children: iterations, Modifiers: modifiers, Pos: forTok.Pos}
		return []ast.Node{union}, nil
	}
	return iterations, nil
}

func (p *Parser) parseVector() (*ast.Vector, error) {
	if _, err := p.require(token.OPEN_BRACKET); err != nil {
		return nil, err
	}
	x, err := p.parseCalculation()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.COLON); err != nil {
		return nil, err
	}
	y, err := p.parseCalculation()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.CLOSE_BRACKET); err != nil {
		return nil, err
	}

	vector := &ast.Vector{X: x, Y: y}
	p.logger.Debug().Stringer("vector", vector).Msg("vector")
	return vector, nil
}
