package schema

import (
	"log/slog"
	"sync"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/errors"
)

// Table represents a database table with its columns, rows, and indexes
type Table struct {
	mu      sync.RWMutex
	Name    string
	columns []Column
	header  *data.Header
	rows    []data.Row
	indexes map[string]*data.Index
}

// newTable allocates an empty table with one index per indexed column.
// Column validation is the catalog's job.
func newTable(name string, columns []Column) *Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)

	names := make([]string, len(cols))
	indexes := make(map[string]*data.Index)
	for i, col := range cols {
		names[i] = col.Name
		if col.Indexed {
			indexes[col.Name] = data.NewIndex(col.Name)
		}
	}

	return &Table{
		Name:    name,
		columns: cols,
		header:  data.NewHeader(names),
		indexes: indexes,
	}
}

// Lock acquires an exclusive lock on the table for write operations
func (t *Table) Lock() {
	t.mu.Lock()
}

// Unlock releases the exclusive lock
func (t *Table) Unlock() {
	t.mu.Unlock()
}

// RLock acquires a read lock on the table for read operations.
// Callers that need a consistent view across several reads (the executor) hold it
// for the whole pass and use the Unsafe accessors.
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// Columns returns a copy of the column definitions in display order
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the column names in display order
func (t *Table) ColumnNames() []string {
	return t.header.Names()
}

// Header returns the shared column-name table of this table's rows
func (t *Table) Header() *data.Header {
	return t.header
}

// InsertRow appends a row built from values aligned with the table's columns.
// It returns the assigned row identifier. On failure nothing is modified.
func (t *Table) InsertRow(values []string) (int, error) {
	t.Lock()
	defer t.Unlock()

	if len(values) != len(t.columns) {
		return 0, &errors.ColumnCountMismatchError{
			Table:    t.Name,
			Expected: len(t.columns),
			Got:      len(values),
		}
	}

	// Position BEFORE append is the new identifier
	rowID := len(t.rows)
	row := data.NewRow(rowID, t.header, values)
	t.rows = append(t.rows, row)

	for i, col := range t.columns {
		if !col.Indexed {
			continue
		}
		t.indexes[col.Name].Add(row.At(i), rowID)
	}

	slog.Debug("row inserted", "table", t.Name, "row_id", rowID)
	return rowID, nil
}

// Len returns the number of stored rows
func (t *Table) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.rows)
}

// Rows returns all rows in row-id order
func (t *Table) Rows() []data.Row {
	t.RLock()
	defer t.RUnlock()
	return t.RowsUnsafe()
}

// RowsUnsafe returns all rows without acquiring the lock.
// IMPORTANT: Only call this while holding RLock or Lock!
func (t *Table) RowsUnsafe() []data.Row {
	rows := make([]data.Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Row returns the row with the given identifier
func (t *Table) Row(id int) (data.Row, bool) {
	t.RLock()
	defer t.RUnlock()
	return t.RowUnsafe(id)
}

// RowUnsafe is Row without locking.
// IMPORTANT: Only call this while holding RLock or Lock!
func (t *Table) RowUnsafe(id int) (data.Row, bool) {
	if id < 0 || id >= len(t.rows) {
		return data.Row{}, false
	}
	return t.rows[id], true
}

// IndexUnsafe returns the index on column, if any.
// IMPORTANT: Only call this while holding RLock or Lock!
func (t *Table) IndexUnsafe(column string) (*data.Index, bool) {
	idx, ok := t.indexes[column]
	return idx, ok
}

// Index returns the index on column, if any
func (t *Table) Index(column string) (*data.Index, bool) {
	t.RLock()
	defer t.RUnlock()
	return t.IndexUnsafe(column)
}

// HasIndex reports whether column is indexed
func (t *Table) HasIndex(column string) bool {
	_, ok := t.Index(column)
	return ok
}

// ListIndexedColumns returns a snapshot of every index, in column order
func (t *Table) ListIndexedColumns() []IndexView {
	t.RLock()
	defer t.RUnlock()

	var views []IndexView
	for _, col := range t.columns {
		if !col.Indexed {
			continue
		}
		snapshot := t.indexes[col.Name].Snapshot()
		view := IndexView{
			Column:  col.Name,
			Buckets: make([]BucketView, len(snapshot)),
		}
		for i, b := range snapshot {
			view.Buckets[i] = BucketView{Value: b.Value, RowIDs: b.RowIDs}
		}
		views = append(views, view)
	}
	return views
}
