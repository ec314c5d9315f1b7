package predicate

import (
	"fmt"
	"strings"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/errors"
)

// Operator is a comparison operator accepted in WHERE clauses
type Operator string

const (
	OpEqual        Operator = "="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
)

// Predicate is a single comparison: Column Op Operand.
// When OperandIsConstant is false, Operand names another column of the same row.
type Predicate struct {
	Column            string
	Op                Operator
	Operand           string
	OperandIsConstant bool
}

func (p Predicate) String() string {
	if p.OperandIsConstant {
		return fmt.Sprintf("%s %s %q", p.Column, p.Op, p.Operand)
	}
	return fmt.Sprintf("%s %s %s", p.Column, p.Op, p.Operand)
}

// Validate checks that every column the predicate reads exists in header
func (p Predicate) Validate(table string, header *data.Header) error {
	if _, ok := header.Position(p.Column); !ok {
		return &errors.UnknownColumnError{Table: table, Column: p.Column}
	}
	if !p.OperandIsConstant {
		if _, ok := header.Position(p.Operand); !ok {
			return &errors.UnknownColumnError{Table: table, Column: p.Operand}
		}
	}
	return nil
}

// Evaluate tests row against the predicate.
// Both sides are upper-cased and compared as text, never as numbers.
// Unknown operators evaluate to false.
func (p Predicate) Evaluate(row data.Row) (bool, error) {
	left, ok := row.Get(p.Column)
	if !ok {
		return false, &errors.UnknownColumnError{Column: p.Column}
	}

	right := p.Operand
	if !p.OperandIsConstant {
		right, ok = row.Get(p.Operand)
		if !ok {
			return false, &errors.UnknownColumnError{Column: p.Operand}
		}
	}

	return Compare(Fold(left), p.Op, Fold(right)), nil
}

// Fold returns the case-folded form used for every comparison and sort
func Fold(s string) string {
	return strings.ToUpper(s)
}

// Compare applies op to two already-folded values
func Compare(left string, op Operator, right string) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// PredicateFunc is a function that tests whether a row matches certain criteria
type PredicateFunc func(data.Row) bool

// Build converts the predicate into a PredicateFunc.
// Rows missing a referenced column do not match; run Validate first to report them.
func (p Predicate) Build() PredicateFunc {
	return func(row data.Row) bool {
		ok, err := p.Evaluate(row)
		return err == nil && ok
	}
}
