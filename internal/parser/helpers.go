package parser

import (
	"strconv"
	"strings"

	"github.com/leengari/minidb/internal/parser/lexer"
)

// isComparisonOperator checks if a token type is a comparison operator
func isComparisonOperator(t lexer.TokenType) bool {
	return t == lexer.EQUALS ||
		t == lexer.LESS_THAN ||
		t == lexer.GREATER_THAN ||
		t == lexer.LESS_EQUAL ||
		t == lexer.GREATER_EQUAL
}

// isNameToken checks if a token can hold a table or column name.
// Keywords are accepted so that columns such as order or desc need no renaming.
func isNameToken(t lexer.TokenType) bool {
	return t == lexer.WORD || t.IsKeyword()
}

// isValidName checks that s is a table or column name: [A-Za-z_][A-Za-z0-9_]*
func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '_', 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		case '0' <= ch && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// isNumeric reports whether a bare word is a number, which makes it a constant operand
// Words like inf or nan are column names, not numbers.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	switch c := s[0]; {
	case '0' <= c && c <= '9', c == '-', c == '+', c == '.':
	default:
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// valuePiece is one raw comma-separated entry of an INSERT value list
type valuePiece struct {
	text string
	pos  int
}

// splitValues scans input from start up to the closing paren of a value list.
// Commas and parens inside quotes do not count. It returns the pieces and the
// offset of the closing paren.
func splitValues(input string, start int) ([]valuePiece, int, error) {
	var pieces []valuePiece
	begin := start
	for i := start; i < len(input); i++ {
		switch ch := input[i]; ch {
		case '"', '\'':
			end := strings.IndexByte(input[i+1:], ch)
			if end < 0 {
				return nil, 0, &SyntaxError{Pos: i, Msg: "unterminated string"}
			}
			i += end + 1
		case ',':
			pieces = append(pieces, valuePiece{text: input[begin:i], pos: begin})
			begin = i + 1
		case ')':
			pieces = append(pieces, valuePiece{text: input[begin:i], pos: begin})
			return pieces, i, nil
		case ';':
			return nil, 0, &SyntaxError{Pos: i, Msg: "expected ), got ;"}
		}
	}
	return nil, 0, &SyntaxError{Pos: len(input), Msg: "expected ), got end of input"}
}

// unquote returns the value written in a trimmed piece.
// A piece that is exactly one quoted string loses its quotes; an empty piece is not a value.
func unquote(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if q := s[0]; len(s) >= 2 && (q == '"' || q == '\'') && s[len(s)-1] == q &&
		strings.IndexByte(s[1:len(s)-1], q) < 0 {
		return s[1 : len(s)-1], true
	}
	return s, true
}
