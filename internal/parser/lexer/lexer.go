package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	WORD   // table_name, column_name, bare value such as 42 or a@b.c
	STRING // "value" or 'value'

	// Keywords
	CREATE
	TABLE
	INSERT
	INTO
	VALUES
	SELECT
	FROM
	WHERE
	ORDER_BY
	ORDER
	BY
	ASC
	DESC
	SHOW
	INDEXES
	INDEXED
	EXPLAIN

	// Operators & Punctuation
	ASTERISK      // *
	COMMA         // ,
	PAREN_OPEN    // (
	PAREN_CLOSE   // )
	EQUALS        // =
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	SEMICOLON     // ;
)

var keywords = map[string]TokenType{
	"CREATE":   CREATE,
	"TABLE":    TABLE,
	"INSERT":   INSERT,
	"INTO":     INTO,
	"VALUES":   VALUES,
	"SELECT":   SELECT,
	"FROM":     FROM,
	"WHERE":    WHERE,
	"ORDER_BY": ORDER_BY,
	"ORDER":    ORDER,
	"BY":       BY,
	"ASC":      ASC,
	"DESC":     DESC,
	"SHOW":     SHOW,
	"INDEXES":  INDEXES,
	"INDEXED":  INDEXED,
	"EXPLAIN":  EXPLAIN,
}

var names = map[TokenType]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	WORD:          "WORD",
	STRING:        "STRING",
	ASTERISK:      "*",
	COMMA:         ",",
	PAREN_OPEN:    "(",
	PAREN_CLOSE:   ")",
	EQUALS:        "=",
	LESS_THAN:     "<",
	GREATER_THAN:  ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",
	SEMICOLON:     ";",
}

func init() {
	for word, tt := range keywords {
		names[tt] = word
	}
}

func (t TokenType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsKeyword reports whether t is a reserved word
func (t TokenType) IsKeyword() bool {
	return t >= CREATE && t <= EXPLAIN
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int // byte offset in the input
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position
	var tok Token

	switch l.ch {
	case '*':
		tok = newToken(ASTERISK, "*", pos)
	case ',':
		tok = newToken(COMMA, ",", pos)
	case '(':
		tok = newToken(PAREN_OPEN, "(", pos)
	case ')':
		tok = newToken(PAREN_CLOSE, ")", pos)
	case '=':
		tok = newToken(EQUALS, "=", pos)
	case ';':
		tok = newToken(SEMICOLON, ";", pos)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(LESS_EQUAL, "<=", pos)
		} else {
			tok = newToken(LESS_THAN, "<", pos)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(GREATER_EQUAL, ">=", pos)
		} else {
			tok = newToken(GREATER_THAN, ">", pos)
		}
	case '"', '\'':
		lit, ok := l.readString(l.ch)
		if !ok {
			return newToken(ILLEGAL, l.input[pos:], pos)
		}
		return newToken(STRING, lit, pos)
	case 0:
		return newToken(EOF, "", pos)
	default:
		lit := l.readWord()
		return newToken(LookupWord(lit), lit, pos)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readWord consumes a run of characters up to whitespace, punctuation, an operator or a quote
func (l *Lexer) readWord() string {
	position := l.position
	for l.ch != 0 && !isDelimiter(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString consumes a quoted string; the quotes are not part of the literal.
// It reports false when the closing quote is missing.
func (l *Lexer) readString(quote byte) (string, bool) {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == quote {
			break
		}
		if l.ch == 0 {
			return "", false
		}
	}
	lit := l.input[position:l.position]

	// Consume the closing quote
	l.readChar()
	return lit, true
}

func newToken(tokenType TokenType, lit string, pos int) Token {
	return Token{Type: tokenType, Literal: lit, Pos: pos}
}

// LookupWord returns the keyword type for word, or WORD
func LookupWord(word string) TokenType {
	if tok, ok := keywords[strings.ToUpper(word)]; ok {
		return tok
	}
	return WORD
}

func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '*', ',', '(', ')', '=', ';', '<', '>', '"', '\'':
		return true
	}
	return false
}

// Tokenize splits input into tokens, stopping after the first ';'.
// Anything after the terminator is ignored.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("unterminated string at offset %d: %s", tok.Pos, tok.Literal)
		}
		tokens = append(tokens, tok)
		if tok.Type == SEMICOLON {
			break
		}
	}
	return tokens, nil
}
