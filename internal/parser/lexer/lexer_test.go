package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := `SELECT * FROM users WHERE age >= "30" ORDER_BY name DESC;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{SELECT, "SELECT"},
		{ASTERISK, "*"},
		{FROM, "FROM"},
		{WORD, "users"},
		{WHERE, "WHERE"},
		{WORD, "age"},
		{GREATER_EQUAL, ">="},
		{STRING, "30"},
		{ORDER_BY, "ORDER_BY"},
		{WORD, "name"},
		{DESC, "DESC"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equal(t, tt.expectedType, tok.Type, "tests[%d] - tokentype wrong", i)
		assert.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d] - literal wrong", i)
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	tokens, err := Tokenize("create Table insert into values show indexes indexed explain")
	require.NoError(t, err)

	want := []TokenType{CREATE, TABLE, INSERT, INTO, VALUES, SHOW, INDEXES, INDEXED, EXPLAIN}
	require.Len(t, tokens, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type)
		assert.True(t, tokens[i].Type.IsKeyword())
	}
}

func TestOperators(t *testing.T) {
	tokens, err := Tokenize("a<b a<=b a>b a>=b a=b (x, y)")
	require.NoError(t, err)

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{
		WORD, LESS_THAN, WORD,
		WORD, LESS_EQUAL, WORD,
		WORD, GREATER_THAN, WORD,
		WORD, GREATER_EQUAL, WORD,
		WORD, EQUALS, WORD,
		PAREN_OPEN, WORD, COMMA, WORD, PAREN_CLOSE,
	}, types)
}

func TestStrings(t *testing.T) {
	tokens, err := Tokenize(`"hello, world" 'single "quoted"' ""`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, Token{Type: STRING, Literal: "hello, world", Pos: 0}, tokens[0])
	assert.Equal(t, `single "quoted"`, tokens[1].Literal)
	assert.Equal(t, "", tokens[2].Literal)
	assert.Equal(t, STRING, tokens[2].Type)
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`INSERT t ("abc)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string at offset 10")
}

func TestTokenizeStopsAtSemicolon(t *testing.T) {
	tokens, err := Tokenize(`SHOW INDEXES t; garbage "unterminated`)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, SEMICOLON, tokens[3].Type)
}

func TestBareValues(t *testing.T) {
	tokens, err := Tokenize("a@b.c -1.5 42")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Equal(t, WORD, tok.Type)
	}
	assert.Equal(t, "a@b.c", tokens[0].Literal)
	assert.Equal(t, 6, tokens[1].Pos)
}
