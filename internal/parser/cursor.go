package parser

import (
	"github.com/HicaroD/fcad/internal/lexer/token"
)

// cursor walks a token slice that always ends with EOF.
type cursor struct {
	offset int
	tokens []*token.Token
}

func newCursor(tokens []*token.Token) *cursor {
	return &cursor{offset: 0, tokens: tokens}
}

func (cursor *cursor) peek() *token.Token {
	return cursor.tokens[cursor.offset]
}

func (cursor *cursor) peekN(n int) *token.Token {
	if cursor.offset+n < len(cursor.tokens) {
		return cursor.tokens[cursor.offset+n]
	}
	return cursor.tokens[len(cursor.tokens)-1]
}

func (cursor *cursor) next() *token.Token {
	tok := cursor.tokens[cursor.offset]
	if cursor.offset < len(cursor.tokens)-1 {
		cursor.offset++
	}
	return tok
}

func (cursor *cursor) skip() {
	cursor.next()
}

func (cursor *cursor) nextIs(expectedKind token.Kind) bool {
	return cursor.peek().Kind == expectedKind
}
