package testutil

import (
	"testing"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/schema"
)

// CreateTable creates a table named name in a fresh catalog and inserts rows
func CreateTable(t *testing.T, name string, columns []schema.Column, rows ...[]string) *schema.Table {
	t.Helper()
	table, err := schema.NewCatalog().CreateTable(name, columns)
	if err != nil {
		t.Fatalf("failed to create table %s: %v", name, err)
	}
	for _, values := range rows {
		if _, err := table.InsertRow(values); err != nil {
			t.Fatalf("failed to insert %v into %s: %v", values, name, err)
		}
	}
	return table
}

// CreateUsersTable creates a users table with an indexed status column and sample data
func CreateUsersTable(t *testing.T) *schema.Table {
	t.Helper()
	return CreateTable(t, "users",
		[]schema.Column{
			{Name: "id"},
			{Name: "name"},
			{Name: "status", Indexed: true},
		},
		[]string{"1", "alice", "active"},
		[]string{"2", "bob", "inactive"},
		[]string{"3", "carol", "active"},
	)
}

// RowIDs returns the identifiers of rows in order
func RowIDs(rows []data.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ColumnValues returns the value of column for each row in order
func ColumnValues(rows []data.Row, column string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r.Get(column)
	}
	return out
}
