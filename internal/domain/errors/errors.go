package errors

import (
	stderrors "errors"
	"fmt"
)

// DuplicateTableError is returned when a table with the same name already exists
type DuplicateTableError struct {
	Table string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %s already exists", e.Table)
}

// UnknownTableError is returned when a request names a table the catalog does not hold
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %s does not exist", e.Table)
}

// ColumnCountMismatchError is returned when an insert supplies the wrong number of values
type ColumnCountMismatchError struct {
	Table    string
	Expected int // number of columns in the table
	Got      int // number of values supplied
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count does not match value count in %s: expected %d, got %d",
		e.Table, e.Expected, e.Got)
}

// UnknownColumnError is returned when a predicate or sort key references a missing column
type UnknownColumnError struct {
	Table  string // empty when the table is not known at the point of failure
	Column string
}

func (e *UnknownColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("column %s does not exist", e.Column)
	}
	return fmt.Sprintf("column %s does not exist in table %s", e.Column, e.Table)
}

// InvalidSchemaError is returned by table creation when the column list is unusable
type InvalidSchemaError struct {
	Table  string
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid schema for table %q: %s", e.Table, e.Reason)
}

// Kind returns a short label for the error kind of err, used in metrics and wire responses
func Kind(err error) string {
	var (
		duplicate *DuplicateTableError
		unknown   *UnknownTableError
		mismatch  *ColumnCountMismatchError
		column    *UnknownColumnError
		invalid   *InvalidSchemaError
	)
	switch {
	case err == nil:
		return "ok"
	case stderrors.As(err, &duplicate):
		return "duplicate_table"
	case stderrors.As(err, &unknown):
		return "unknown_table"
	case stderrors.As(err, &mismatch):
		return "column_count_mismatch"
	case stderrors.As(err, &column):
		return "unknown_column"
	case stderrors.As(err, &invalid):
		return "invalid_schema"
	default:
		return "error"
	}
}
