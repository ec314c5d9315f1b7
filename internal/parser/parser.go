package parser

import (
	"fmt"
	"strings"

	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/parser/lexer"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
	"github.com/leengari/minidb/internal/request"
)

// SyntaxError reports a malformed command
type SyntaxError struct {
	Pos int // byte offset of the offending token
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

type Parser struct {
	input   string // raw command text, used for INSERT value lists
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(input string, tokens []lexer.Token) *Parser {
	p := &Parser{input: input, tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// Parse tokenizes and parses one command
func Parse(input string) (request.Request, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return New(input, tokens).Parse()
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.curTok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) Parse() (request.Request, error) {
	var (
		req request.Request
		err error
	)

	switch p.curTok.Type {
	case lexer.CREATE:
		req, err = p.parseCreate()
	case lexer.INSERT:
		req, err = p.parseInsert()
	case lexer.SELECT:
		req, err = p.parseSelect()
	case lexer.SHOW:
		req, err = p.parseShowIndexes()
	case lexer.EXPLAIN:
		req, err = p.parseExplain()
	case lexer.EOF:
		return nil, p.errorf("empty command")
	default:
		return nil, p.errorf("unknown command: %s", p.curTok.Literal)
	}
	if err != nil {
		return nil, err
	}

	// Semicolon (Optional)
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return nil, p.errorf("unexpected %s after end of command", p.curTok.Literal)
	}

	return req, nil
}

// CREATE [TABLE] name (col [INDEXED], ...)
func (p *Parser) parseCreate() (*request.CreateTable, error) {
	p.nextToken()
	if p.curTok.Type == lexer.TABLE && p.peekIsName() {
		p.nextToken()
	}

	name, err := p.parseName("table name")
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.PAREN_OPEN); err != nil {
		return nil, err
	}

	var columns []schema.Column
	for {
		colName, err := p.parseName("column name")
		if err != nil {
			return nil, err
		}
		col := schema.Column{Name: colName}
		if p.curTok.Type == lexer.INDEXED {
			col.Indexed = true
			p.nextToken()
		}
		columns = append(columns, col)

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if err := p.expect(lexer.PAREN_CLOSE); err != nil {
		return nil, err
	}

	return &request.CreateTable{TableName: name, Columns: columns}, nil
}

// INSERT [INTO] name [VALUES] (v1, v2, ...)
func (p *Parser) parseInsert() (*request.Insert, error) {
	p.nextToken()
	if p.curTok.Type == lexer.INTO && p.peekIsName() {
		p.nextToken()
	}

	name, err := p.parseName("table name")
	if err != nil {
		return nil, err
	}

	if p.curTok.Type == lexer.VALUES {
		p.nextToken()
	}

	values, err := p.parseValueList()
	if err != nil {
		return nil, err
	}

	return &request.Insert{TableName: name, Values: values}, nil
}

// SELECT [*] FROM name [WHERE col op operand] [ORDER_BY col [ASC|DESC], ...]
func (p *Parser) parseSelect() (*request.Select, error) {
	stmt := &request.Select{}

	// SELECT
	p.nextToken()
	if p.curTok.Type == lexer.ASTERISK {
		p.nextToken()
	}

	// FROM
	if err := p.expect(lexer.FROM); err != nil {
		return nil, err
	}

	name, err := p.parseName("table name")
	if err != nil {
		return nil, err
	}
	stmt.TableName = name

	// WHERE (Optional)
	if p.curTok.Type == lexer.WHERE {
		p.nextToken()
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		stmt.Predicate = pred
	}

	// ORDER_BY / ORDER BY (Optional)
	switch p.curTok.Type {
	case lexer.ORDER_BY:
		p.nextToken()
	case lexer.ORDER:
		p.nextToken()
		if err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
	default:
		return stmt, nil
	}

	keys, err := p.parseSortKeys()
	if err != nil {
		return nil, err
	}
	stmt.SortKeys = keys

	return stmt, nil
}

// SHOW INDEXES name
func (p *Parser) parseShowIndexes() (*request.ShowIndexes, error) {
	p.nextToken()
	if err := p.expect(lexer.INDEXES); err != nil {
		return nil, err
	}

	name, err := p.parseName("table name")
	if err != nil {
		return nil, err
	}
	return &request.ShowIndexes{TableName: name}, nil
}

// EXPLAIN SELECT ...
func (p *Parser) parseExplain() (*request.Explain, error) {
	p.nextToken()
	if p.curTok.Type != lexer.SELECT {
		return nil, p.errorf("EXPLAIN supports SELECT only, got %s", p.curTok.Literal)
	}
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	return &request.Explain{Select: sel}, nil
}

func (p *Parser) parsePredicate() (*predicate.Predicate, error) {
	column, err := p.parseName("column name")
	if err != nil {
		return nil, err
	}

	if !isComparisonOperator(p.curTok.Type) {
		return nil, p.errorf("expected comparison operator, got %s", p.curTok.Literal)
	}
	op := predicate.Operator(p.curTok.Literal)
	p.nextToken()

	pred := &predicate.Predicate{Column: column, Op: op}
	switch {
	case p.curTok.Type == lexer.STRING:
		pred.Operand = p.curTok.Literal
		pred.OperandIsConstant = true
	case p.curTok.Type == lexer.WORD && isNumeric(p.curTok.Literal):
		pred.Operand = p.curTok.Literal
		pred.OperandIsConstant = true
	case isNameToken(p.curTok.Type) && isValidName(p.curTok.Literal):
		pred.Operand = p.curTok.Literal
		pred.OperandIsConstant = false
	default:
		return nil, p.errorf("expected quoted value or column name, got %s", p.curTok.Literal)
	}
	p.nextToken()

	return pred, nil
}

func (p *Parser) parseSortKeys() ([]plan.SortKey, error) {
	var keys []plan.SortKey
	for {
		column, err := p.parseName("column name")
		if err != nil {
			return nil, err
		}
		key := plan.SortKey{Column: column, Direction: plan.Asc}
		switch p.curTok.Type {
		case lexer.ASC:
			p.nextToken()
		case lexer.DESC:
			key.Direction = plan.Desc
			p.nextToken()
		}
		keys = append(keys, key)

		if p.curTok.Type != lexer.COMMA {
			return keys, nil
		}
		p.nextToken()
	}
}

// parseValueList parses ( value {, value} ) from the raw input.
// Values are split on commas outside quotes. A value that is a single quoted
// string keeps its inner text verbatim; anything else is trimmed and taken as written.
func (p *Parser) parseValueList() ([]string, error) {
	if p.curTok.Type != lexer.PAREN_OPEN {
		return nil, p.errorf("expected (, got %s", p.describeCur())
	}
	open := p.curTok.Pos

	pieces, closePos, err := splitValues(p.input, open+1)
	if err != nil {
		return nil, err
	}

	values := make([]string, len(pieces))
	for i, piece := range pieces {
		v, ok := unquote(strings.TrimSpace(piece.text))
		if !ok {
			return nil, &SyntaxError{Pos: piece.pos, Msg: "expected value"}
		}
		values[i] = v
	}

	// Skip the tokens covered by the value list and consume the closing paren
	for p.curTok.Type != lexer.EOF && p.curTok.Pos < closePos {
		p.nextToken()
	}
	if p.curTok.Type != lexer.PAREN_CLOSE || p.curTok.Pos != closePos {
		return nil, p.errorf("expected ), got %s", p.describeCur())
	}
	p.nextToken()

	return values, nil
}

func (p *Parser) parseName(what string) (string, error) {
	if !isNameToken(p.curTok.Type) || !isValidName(p.curTok.Literal) {
		return "", p.errorf("expected %s, got %s", what, p.describeCur())
	}
	name := p.curTok.Literal
	p.nextToken()
	return name, nil
}

func (p *Parser) expect(tt lexer.TokenType) error {
	if p.curTok.Type != tt {
		return p.errorf("expected %s, got %s", tt, p.describeCur())
	}
	p.nextToken()
	return nil
}

// peekIsName reports whether the next token can be a table or column name
func (p *Parser) peekIsName() bool {
	return isNameToken(p.peekTok.Type) && isValidName(p.peekTok.Literal)
}

func (p *Parser) describeCur() string {
	if p.curTok.Type == lexer.EOF {
		return "end of input"
	}
	return p.curTok.Literal
}
