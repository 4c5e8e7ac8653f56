package lexer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/fcad/internal/diagnostics"
	"github.com/HicaroD/fcad/internal/lexer/token"
)

type tokenKindTest struct {
	lexeme string
	kind   token.Kind
}

func TestTokenKinds(t *testing.T) {
	filename := "test.fcad"

	tests := []*tokenKindTest{
		{"use", token.USE},
		{"for", token.FOR},
		{"not", token.NOT},
		{"and", token.AND},
		{"or", token.OR},
		{"true", token.TRUE_BOOL_LITERAL},
		{"false", token.FALSE_BOOL_LITERAL},

		{"circle", token.ID},
		{"translate", token.ID},
		{"$fn", token.ID},
		{"_tmp1", token.ID},
		{"PI", token.ID},

		{"42", token.INTEGER_LITERAL},
		{"4.", token.FLOAT_LITERAL},
		{"4.25", token.FLOAT_LITERAL},
		{"1e3", token.FLOAT_LITERAL},
		{"1.5E-3", token.FLOAT_LITERAL},
		{`"text"`, token.STRING_LITERAL},

		{"(", token.OPEN_PAREN},
		{")", token.CLOSE_PAREN},
		{"{", token.OPEN_CURLY},
		{"}", token.CLOSE_CURLY},
		{"[", token.OPEN_BRACKET},
		{"]", token.CLOSE_BRACKET},
		{",", token.COMMA},
		{";", token.SEMICOLON},
		{":", token.COLON},
		{"=", token.EQUAL},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"^", token.CARET},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenKind(%q)", test.lexeme), func(t *testing.T) {
			lex := New(filename, []byte(test.lexeme))

			tokenResult, err := lex.Tokenize()
			require.NoError(t, err)
			require.Len(t, tokenResult, 2)
			assert.Equal(t, token.EOF, tokenResult[1].Kind)
			assert.Equal(t, test.kind, tokenResult[0].Kind)
		})
	}
}

type tokenPosTest struct {
	input     string
	positions []token.Pos
}

func TestTokenPos(t *testing.T) {
	filename := "test.fcad"

	tests := []*tokenPosTest{
		{";", []token.Pos{
			{Filename: filename, Offset: 0, Line: 1, Column: 1},  // ;
			{Filename: filename, Offset: 1, Line: 1, Column: 2}}, // eof
		},
		{";\n;", []token.Pos{
			{Filename: filename, Offset: 0, Line: 1, Column: 1},  // ;
			{Filename: filename, Offset: 2, Line: 2, Column: 1},  // ;
			{Filename: filename, Offset: 3, Line: 2, Column: 2}}, // eof
		},
		{"circle\n  (r = 10);", []token.Pos{
			{Filename: filename, Offset: 0, Line: 1, Column: 1},   // circle
			{Filename: filename, Offset: 9, Line: 2, Column: 3},   // (
			{Filename: filename, Offset: 10, Line: 2, Column: 4},  // r
			{Filename: filename, Offset: 12, Line: 2, Column: 6},  // =
			{Filename: filename, Offset: 14, Line: 2, Column: 8},  // 10
			{Filename: filename, Offset: 16, Line: 2, Column: 10}, // )
			{Filename: filename, Offset: 17, Line: 2, Column: 11}, // ;
			{Filename: filename, Offset: 18, Line: 2, Column: 12}}, // eof
		},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenPos(%q)", test.input), func(t *testing.T) {
			lex := New(filename, []byte(test.input))

			tokenResult, err := lex.Tokenize()
			require.NoError(t, err)
			require.Len(t, tokenResult, len(test.positions))

			for i, tok := range tokenResult {
				assert.Equal(t, test.positions[i], tok.Pos, "token %d (%s)", i, tok.Kind)
			}
		})
	}
}

func TestLexemes(t *testing.T) {
	lex := New("test.fcad", []byte(`r = 2.5e1 + foo_bar; s = "a\"b\n";`))
	tokens, err := lex.Tokenize()
	require.NoError(t, err)

	var lexemes []string
	for _, tok := range tokens {
		lexemes = append(lexemes, tok.Name())
	}
	assert.Equal(t, []string{"r", "=", "2.5e1", "+", "foo_bar", ";", "s", "=", "a\"b\n", ";", "end of file"}, lexemes)
}

func TestExponentNeedsDigits(t *testing.T) {
	lex := New("test.fcad", []byte("2E"))
	tokens, err := lex.Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.INTEGER_LITERAL, tokens[0].Kind)
	assert.Equal(t, "2", tokens[0].Name())
	assert.Equal(t, token.ID, tokens[1].Kind)
	assert.Equal(t, "E", tokens[1].Name())
}

func TestCommentsAreSkipped(t *testing.T) {
	input := `// leading comment
circle(r=1); /* block
spanning lines */ rect(w=1, h=2); // trailing
/**/`

	lex := New("test.fcad", []byte(input))
	tokens, err := lex.Tokenize()
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.ID, token.OPEN_PAREN, token.ID, token.EQUAL, token.INTEGER_LITERAL, token.CLOSE_PAREN, token.SEMICOLON,
		token.ID, token.OPEN_PAREN, token.ID, token.EQUAL, token.INTEGER_LITERAL, token.COMMA,
		token.ID, token.EQUAL, token.INTEGER_LITERAL, token.CLOSE_PAREN, token.SEMICOLON,
		token.EOF,
	}, kinds)

	// the block comment moved "rect" to line 3
	assert.Equal(t, 3, tokens[7].Pos.Line)
}

func TestDivisionIsNotAComment(t *testing.T) {
	lex := New("test.fcad", []byte("a/b"))
	tokens, err := lex.Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.SLASH, tokens[1].Kind)
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"circle(r=1);\n#", "invalid character '#'", 2, 1},
		{"r\xc3\xa9 = 1;", "invalid character 'Ã'", 1, 2},
		{"\xaa = 1;", "invalid character 'ª'", 1, 1},
		{"a = 1; /* never closed", "unterminated block comment", 1, 8},
		{`s = "open`, "unterminated string literal", 1, 5},
		{`s = "\q"`, "invalid escape sequence in string literal", 1, 7},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestLexicalErrors(%q)", test.input), func(t *testing.T) {
			lex := New("test.fcad", []byte(test.input))
			_, err := lex.Tokenize()
			require.Error(t, err)

			var synErr *diagnostics.SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, test.message, synErr.Message)
			assert.Equal(t, test.line, synErr.Loc.Line)
			assert.Equal(t, test.column, synErr.Loc.Column)

			assert.Equal(t, token.INVALID, lex.Next().Kind)
		})
	}
}

func TestNewFromFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.fcad")
	require.NoError(t, os.WriteFile(path, []byte("circle(r=1);"), 0o644))

	lex, err := NewFromFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, lex.Filename)

	tokens, err := lex.Tokenize()
	require.NoError(t, err)
	assert.Len(t, tokens, 8)

	_, err = NewFromFilePath(filepath.Join(t.TempDir(), "missing.fcad"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
