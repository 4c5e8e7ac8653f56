package lexer

import (
	"fmt"
	"os"

	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

const eof = '\000'

type Lexer struct {
	Filename string

	src    []byte
	offset int
	pos    token.Pos
	err    error
}

func New(filename string, src []byte) *Lexer {
	lexer := new(Lexer)

	lexer.Filename = filename
	lexer.pos = token.NewPosition(filename, 0, 1, 1)
	lexer.src = src
	lexer.offset = 0

	return lexer
}

func NewFromFilePath(path string) (*Lexer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, src), nil
}

func (lex *Lexer) Source() []byte { return lex.src }

func (lex *Lexer) Next() *token.Token {
	tok := &token.Token{}
	tok.Kind = token.INVALID

	if lex.err != nil || !lex.skipWhitespaceAndComments() {
		tok.Pos = lex.pos
		return tok
	}

	character := lex.peekChar()
	if character == eof && lex.offset >= len(lex.src) {
		lex.consumeTokenNoLex(tok, token.EOF)
		return tok
	}

	return lex.getToken(tok, character)
}

// Tokenize lexes the whole input. The last token is always EOF.
func (lex *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	for {
		tok := lex.Next()
		if tok.Kind == token.INVALID {
			return nil, lex.err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (lex *Lexer) getToken(tok *token.Token, ch byte) *token.Token {
	switch ch {
	case '(':
		lex.consumeSingle(tok, token.OPEN_PAREN)
	case ')':
		lex.consumeSingle(tok, token.CLOSE_PAREN)
	case '{':
		lex.consumeSingle(tok, token.OPEN_CURLY)
	case '}':
		lex.consumeSingle(tok, token.CLOSE_CURLY)
	case '[':
		lex.consumeSingle(tok, token.OPEN_BRACKET)
	case ']':
		lex.consumeSingle(tok, token.CLOSE_BRACKET)
	case ',':
		lex.consumeSingle(tok, token.COMMA)
	case ';':
		lex.consumeSingle(tok, token.SEMICOLON)
	case ':':
		lex.consumeSingle(tok, token.COLON)
	case '=':
		lex.consumeSingle(tok, token.EQUAL)
	case '+':
		lex.consumeSingle(tok, token.PLUS)
	case '-':
		lex.consumeSingle(tok, token.MINUS)
	case '*':
		lex.consumeSingle(tok, token.STAR)
	case '/':
		lex.consumeSingle(tok, token.SLASH)
	case '^':
		lex.consumeSingle(tok, token.CARET)
	case '"':
		lex.getStringLit(tok)
	default:
		if isIdStart(ch) {
			lex.getIdOrKeyword(tok)
		} else if isDigit(ch) {
			lex.getNumberLit(tok)
		} else {
			tok.Pos = lex.pos
			lex.fail(tok.Pos, fmt.Sprintf("invalid character %q", ch))
		}
	}
	return tok
}

func (lex *Lexer) getStringLit(tok *token.Token) {
	tok.Pos = lex.pos
	lex.nextChar() // "

	var str []byte
	for {
		ch := lex.peekChar()
		if lex.atEnd() || ch == '"' || ch == '\n' {
			break
		}

		if ch == '\\' {
			lex.nextChar()
			var escape byte
			switch lex.peekChar() {
			case 'n':
				escape = '\n'
			case 't':
				escape = '\t'
			case '\\':
				escape = '\\'
			case '"':
				escape = '"'
			default:
				lex.fail(lex.pos, "invalid escape sequence in string literal")
				return
			}
			str = append(str, escape)
		} else {
			str = append(str, ch)
		}

		lex.nextChar()
	}

	if lex.atEnd() || lex.peekChar() != '"' {
		lex.fail(tok.Pos, "unterminated string literal")
		return
	}
	lex.nextChar() // "

	tok.Kind = token.STRING_LITERAL
	if str == nil {
		str = []byte{}
	}
	tok.Lexeme = str
}

// getNumberLit reads digits [. digits] [(e|E) [+-] digits]. The exponent is
// only taken when at least one digit follows it, so "2E" lexes as 2 and E.
func (lex *Lexer) getNumberLit(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	kind := token.INTEGER_LITERAL

	lex.readWhile(isDigit)

	if lex.peekChar() == '.' {
		kind = token.FLOAT_LITERAL
		lex.nextChar()
		lex.readWhile(isDigit)
	}

	if ch := lex.peekChar(); ch == 'e' || ch == 'E' {
		next := lex.peekCharAt(1)
		if next == '+' || next == '-' {
			next = lex.peekCharAt(2)
			if isDigit(next) {
				lex.nextChar()
				lex.nextChar()
				lex.readWhile(isDigit)
				kind = token.FLOAT_LITERAL
			}
		} else if isDigit(next) {
			lex.nextChar()
			lex.readWhile(isDigit)
			kind = token.FLOAT_LITERAL
		}
	}

	tok.Kind = kind
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) getIdOrKeyword(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.nextChar()
	lex.readWhile(func(chr byte) bool {
		return isLetter(chr) || isDigit(chr) || chr == '_'
	})
	identifier := lex.src[start:lex.offset]

	tok.Kind = token.ID
	tok.Lexeme = identifier
	keyword, ok := token.KEYWORDS[string(identifier)]
	if ok {
		tok.Kind = keyword
	}
}

func (lex *Lexer) consumeSingle(tok *token.Token, kind token.Kind) {
	lex.consumeTokenNoLex(tok, kind)
	lex.nextChar()
}

func (lex *Lexer) consumeTokenNoLex(tok *token.Token, kind token.Kind) {
	tok.Lexeme = nil
	tok.Kind = kind
	tok.Pos = lex.pos
}

// skipWhitespaceAndComments reports false if an unterminated block comment
// was found.
func (lex *Lexer) skipWhitespaceAndComments() bool {
	for {
		lex.readWhile(func(ch byte) bool {
			return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		})

		if lex.peekChar() != '/' {
			return true
		}

		switch lex.peekCharAt(1) {
		case '/':
			lex.readWhile(func(ch byte) bool { return ch != '\n' })
		case '*':
			start := lex.pos
			lex.nextChar()
			lex.nextChar()
			for {
				if lex.atEnd() {
					lex.fail(start, "unterminated block comment")
					return false
				}
				if lex.peekChar() == '*' && lex.peekCharAt(1) == '/' {
					lex.nextChar()
					lex.nextChar()
					break
				}
				lex.nextChar()
			}
		default:
			return true
		}
	}
}

func (lex *Lexer) fail(pos token.Pos, message string) {
	if lex.err == nil {
		lex.err = diagnostics.NewSyntaxError(message, diagnostics.Locate(lex.src, pos.Offset))
	}
	// stop lexing: every following call yields INVALID
	lex.offset = len(lex.src)
	lex.pos.Offset = len(lex.src)
}

func (lex *Lexer) readWhile(isValid func(byte) bool) []byte {
	start := lex.offset
	for !lex.atEnd() && isValid(lex.peekChar()) {
		lex.nextChar()
	}
	return lex.src[start:lex.offset]
}

func (lex *Lexer) atEnd() bool {
	return lex.offset >= len(lex.src)
}

func (lex *Lexer) nextChar() byte {
	if lex.atEnd() {
		return eof
	}
	character := lex.src[lex.offset]
	lex.pos.Move(character)
	lex.offset++
	return character
}

func (lex *Lexer) peekChar() byte {
	return lex.peekCharAt(0)
}

func (lex *Lexer) peekCharAt(n int) byte {
	if lex.offset+n >= len(lex.src) {
		return eof
	}
	return lex.src[lex.offset+n]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Identifiers are ASCII only.
func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch == '$'
}
