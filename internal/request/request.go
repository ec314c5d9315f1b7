// Package request defines the structured requests the engine executes.
// The command parser produces them; the engine never sees raw command text.
package request

import (
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
)

// Kind identifies a request variant
type Kind string

const (
	KindCreateTable Kind = "CREATE_TABLE"
	KindInsert      Kind = "INSERT"
	KindSelect      Kind = "SELECT"
	KindShowIndexes Kind = "SHOW_INDEXES"
	KindExplain     Kind = "EXPLAIN"
)

// Request is one of CreateTable, Insert, Select, ShowIndexes or Explain
type Request interface {
	Kind() Kind
	Table() string
	request()
}

// CreateTable creates a table with the given columns
type CreateTable struct {
	TableName string
	Columns   []schema.Column
}

func (r *CreateTable) Kind() Kind    { return KindCreateTable }
func (r *CreateTable) Table() string { return r.TableName }
func (r *CreateTable) request()      {}

// Insert appends one row; Values are positional
type Insert struct {
	TableName string
	Values    []string
}

func (r *Insert) Kind() Kind    { return KindInsert }
func (r *Insert) Table() string { return r.TableName }
func (r *Insert) request()      {}

// Select retrieves rows, optionally filtered and sorted
type Select struct {
	TableName string
	Predicate *predicate.Predicate // nil selects every row
	SortKeys  []plan.SortKey       // empty keeps candidate order
}

func (r *Select) Kind() Kind    { return KindSelect }
func (r *Select) Table() string { return r.TableName }
func (r *Select) request()      {}

// ShowIndexes lists the indexed columns of a table and their buckets
type ShowIndexes struct {
	TableName string
}

func (r *ShowIndexes) Kind() Kind    { return KindShowIndexes }
func (r *ShowIndexes) Table() string { return r.TableName }
func (r *ShowIndexes) request()      {}

// Explain plans a Select without running it
type Explain struct {
	Select *Select
}

func (r *Explain) Kind() Kind    { return KindExplain }
func (r *Explain) Table() string { return r.Select.TableName }
func (r *Explain) request()      {}
