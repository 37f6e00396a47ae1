package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlet-dev/varlet/internal/token"
)

func TestNextToken(t *testing.T) {
	input := "const [foo, let bar, ...rest] = [1, 2, 3, 4];"
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.CONST, "const"},
		{token.LBRACKET, "["},
		{token.IDENT, "foo"},
		{token.COMMA, ","},
		{token.LET, "let"},
		{token.IDENT, "bar"},
		{token.COMMA, ","},
		{token.SPREAD, "..."},
		{token.IDENT, "rest"},
		{token.RBRACKET, "]"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.COMMA, ","},
		{token.INT, "3"},
		{token.COMMA, ","},
		{token.INT, "4"},
		{token.RBRACKET, "]"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := "= == ! != < <= > >= + - * / . ( ) { } [ ] , ;"
	expected := []token.Type{
		token.ASSIGN, token.EQ, token.BANG, token.NOT_EQ,
		token.LT, token.LT_EQUALS, token.GT, token.GT_EQUALS,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.PERIOD, token.LPAREN, token.RPAREN, token.LBRACE,
		token.RBRACE, token.LBRACKET, token.RBRACKET, token.COMMA,
		token.SEMICOLON, token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, want, tok.Type)
		}
	}
}

func TestPositions(t *testing.T) {
	input := "let x = 5\nconst y = 6"
	l := New(input)
	l.SetFilename("main.vl")

	tok, err := l.Next() // let
	require.Nil(t, err)
	assert.Equal(t, token.LET, tok.Type)
	assert.Equal(t, 1, tok.StartPosition.LineNumber())
	assert.Equal(t, 1, tok.StartPosition.ColumnNumber())
	assert.Equal(t, "main.vl", tok.StartPosition.File)

	for i := 0; i < 4; i++ { // x = 5 EOL
		_, err = l.Next()
		require.Nil(t, err)
	}

	tok, err = l.Next() // const
	require.Nil(t, err)
	assert.Equal(t, token.CONST, tok.Type)
	assert.Equal(t, 2, tok.StartPosition.LineNumber())
	assert.Equal(t, 1, tok.StartPosition.ColumnNumber())

	tok, err = l.Next() // y
	require.Nil(t, err)
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, 7, tok.StartPosition.ColumnNumber())
}

func TestNumbers(t *testing.T) {
	l := New("42 3.14")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, "42", tok.Literal)

	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.FLOAT, tok.Type)
	assert.Equal(t, "3.14", tok.Literal)
}

func TestBadNumber(t *testing.T) {
	l := New("12abc")
	tok, err := l.Next()
	require.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "invalid number literal")
}

func TestStrings(t *testing.T) {
	l := New(`"hello" 'world' "a\nb"`)
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "hello", tok.Literal)

	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "world", tok.Literal)

	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "a\nb", tok.Literal)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok, err := l.Next()
	require.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestComments(t *testing.T) {
	input := "# leading comment\nlet x = 1 // trailing comment\n"
	l := New(input)

	var types []token.Type
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []token.Type{
		token.NEWLINE, token.LET, token.IDENT, token.ASSIGN, token.INT,
		token.NEWLINE, token.EOF,
	}, types)
}

func TestDoublePeriodIsIllegal(t *testing.T) {
	l := New("a..b")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.IDENT, tok.Type)

	_, err = l.Next()
	require.NotNil(t, err)
}

func TestSaveRestoreState(t *testing.T) {
	l := New("let [a] = xs")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.LET, tok.Type)

	saved := l.SaveState()
	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.LBRACKET, tok.Type)

	l.RestoreState(saved)
	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.LBRACKET, tok.Type)
}

func TestGetLineText(t *testing.T) {
	l := New("let a = 1\nlet b = 2")
	var tok token.Token
	var err error
	for i := 0; i < 7; i++ { // advance to "b"
		tok, err = l.Next()
		require.Nil(t, err)
	}
	assert.Equal(t, "b", tok.Literal)
	assert.Equal(t, "let b = 2", l.GetLineText(tok))
}

func TestUnicodeIdentifiers(t *testing.T) {
	l := New("let 世界 = 1")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.LET, tok.Type)

	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "世界", tok.Literal)
}
