package schema

import (
	stderrors "errors"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/minidb/internal/domain/errors"
)

func newUsers(t *testing.T) *Table {
	t.Helper()
	table, err := NewCatalog().CreateTable("users", usersColumns())
	assert.NilError(t, err)
	return table
}

func TestInsertRowAssignsSequentialIDs(t *testing.T) {
	table := newUsers(t)

	for i, values := range [][]string{
		{"1", "alice", "active"},
		{"2", "bob", "inactive"},
		{"3", "carol", "active"},
	} {
		id, err := table.InsertRow(values)
		assert.NilError(t, err)
		assert.Equal(t, id, i)
	}

	rows := table.Rows()
	assert.Equal(t, len(rows), 3)
	for i, row := range rows {
		assert.Equal(t, row.ID, i)
	}

	row, ok := table.Row(1)
	assert.Assert(t, ok)
	name, _ := row.Get("name")
	assert.Equal(t, name, "bob")

	_, ok = table.Row(3)
	assert.Assert(t, !ok)
}

func TestInsertRowColumnCountMismatch(t *testing.T) {
	table := newUsers(t)
	_, err := table.InsertRow([]string{"1", "alice", "active"})
	assert.NilError(t, err)

	for _, values := range [][]string{
		{"2", "bob"},
		{"2", "bob", "active", "extra"},
	} {
		_, err := table.InsertRow(values)

		var mismatch *errors.ColumnCountMismatchError
		assert.Assert(t, stderrors.As(err, &mismatch))
		assert.Equal(t, mismatch.Expected, 3)
		assert.Equal(t, mismatch.Got, len(values))
	}

	// Nothing changed
	assert.Equal(t, table.Len(), 1)
	views := table.ListIndexedColumns()
	assert.DeepEqual(t, views, []IndexView{
		{Column: "id", Buckets: []BucketView{{Value: "1", RowIDs: []int{0}}}},
		{Column: "status", Buckets: []BucketView{{Value: "active", RowIDs: []int{0}}}},
	})
}

// Every row ID appears in exactly the bucket of its own value
func TestIndexConsistency(t *testing.T) {
	table := newUsers(t)
	statuses := []string{"active", "inactive", "active", "banned", "inactive", "active"}
	for i, s := range statuses {
		_, err := table.InsertRow([]string{string(rune('a' + i)), "n", s})
		assert.NilError(t, err)
	}

	for _, view := range table.ListIndexedColumns() {
		seen := make(map[int]int)
		for _, bucket := range view.Buckets {
			for _, id := range bucket.RowIDs {
				seen[id]++
				row, ok := table.Row(id)
				assert.Assert(t, ok)
				v, _ := row.Get(view.Column)
				assert.Equal(t, v, bucket.Value)
			}
		}
		assert.Equal(t, len(seen), len(statuses))
		for id, n := range seen {
			assert.Equal(t, n, 1, "row %d in column %s", id, view.Column)
		}
	}
}

func TestListIndexedColumnsNone(t *testing.T) {
	table, err := NewCatalog().CreateTable("plain", []Column{{Name: "a"}})
	assert.NilError(t, err)
	assert.Equal(t, len(table.ListIndexedColumns()), 0)
}

func TestConcurrentInserts(t *testing.T) {
	table := newUsers(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := table.InsertRow([]string{"x", "y", "active"})
			assert.Check(t, err == nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, table.Len(), 50)
	views := table.ListIndexedColumns()
	assert.Equal(t, len(views[1].Buckets[0].RowIDs), 50)
}
