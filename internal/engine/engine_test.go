package engine

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/minidb/internal/domain/errors"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/parser"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
	"github.com/leengari/minidb/internal/request"
)

func run(t *testing.T, eng *Engine, commands ...string) *Result {
	t.Helper()
	var res *Result
	for _, cmd := range commands {
		var err error
		res, err = eng.ExecuteCommand(context.Background(), cmd)
		assert.NilError(t, err, cmd)
	}
	return res
}

func seeded(t *testing.T) *Engine {
	t.Helper()
	eng := New(schema.NewCatalog())
	run(t, eng,
		`CREATE users (id, name, status INDEXED);`,
		`INSERT INTO users VALUES ("1", "alice", "active");`,
		`INSERT INTO users VALUES ("2", "bob", "inactive");`,
		`INSERT INTO users VALUES ("3", "carol", "active");`,
	)
	return eng
}

func TestCreateAndInsertMessages(t *testing.T) {
	eng := New(schema.NewCatalog())

	res := run(t, eng, `CREATE TABLE users (id, name)`)
	assert.Equal(t, res.Text(), "Table users has been created.\n")

	res = run(t, eng, `INSERT users ("1", "alice")`)
	assert.Equal(t, res.Text(), "1 row has been inserted into users.\n")
	assert.Assert(t, res.RowID != nil)
	assert.Equal(t, *res.RowID, 0)

	res = run(t, eng, `INSERT users ("2", "bob")`)
	assert.Assert(t, res.RowID != nil)
	assert.Equal(t, *res.RowID, 1)
}

func TestRowIDOnlyOnInsert(t *testing.T) {
	eng := seeded(t)

	for _, cmd := range []string{
		`CREATE other (a)`,
		`SELECT FROM users`,
		`SHOW INDEXES users`,
		`EXPLAIN SELECT FROM users`,
	} {
		res := run(t, eng, cmd)
		assert.Assert(t, res.RowID == nil, cmd)

		body, err := json.Marshal(res)
		assert.NilError(t, err)
		assert.Assert(t, !strings.Contains(string(body), "row_id"), "%s: %s", cmd, body)
	}

	res := run(t, eng, `INSERT users ("4", "dave", "active")`)
	body, err := json.Marshal(res)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(body), `"row_id":3`))
}

func TestSelectThroughEngine(t *testing.T) {
	eng := seeded(t)

	res := run(t, eng, `SELECT FROM users WHERE status = "active" ORDER_BY name DESC;`)
	assert.Equal(t, res.ScanType, "index")
	assert.DeepEqual(t, res.Columns, []string{"id", "name", "status"})
	assert.Equal(t, len(res.Rows), 2)

	want := "" +
		"+----+-------+--------+\n" +
		"| id | name  | status |\n" +
		"+----+-------+--------+\n" +
		"| 3  | carol | active |\n" +
		"| 1  | alice | active |\n" +
		"+----+-------+--------+\n"
	assert.Equal(t, res.Text(), want)
}

func TestSelectScanCaseFold(t *testing.T) {
	eng := seeded(t)

	res := run(t, eng, `SELECT FROM users WHERE name = "ALICE"`)
	assert.Equal(t, res.ScanType, "sequential")
	assert.Equal(t, len(res.Rows), 1)
}

func TestRoundTripInsertSelect(t *testing.T) {
	eng := New(schema.NewCatalog())
	ctx := context.Background()

	_, err := eng.Execute(ctx, &request.CreateTable{TableName: "kv", Columns: []schema.Column{{Name: "k"}, {Name: "v"}}})
	assert.NilError(t, err)
	_, err = eng.Execute(ctx, &request.Insert{TableName: "kv", Values: []string{"key one", "Value, with comma"}})
	assert.NilError(t, err)

	res, err := eng.Execute(ctx, &request.Select{TableName: "kv"})
	assert.NilError(t, err)
	assert.Equal(t, len(res.Rows), 1)
	assert.DeepEqual(t, res.Rows[0].Values(), []string{"key one", "Value, with comma"})
}

func TestShowIndexes(t *testing.T) {
	eng := seeded(t)

	res := run(t, eng, `SHOW INDEXES users`)
	assert.DeepEqual(t, res.Indexes, []schema.IndexView{
		{Column: "status", Buckets: []schema.BucketView{
			{Value: "active", RowIDs: []int{0, 2}},
			{Value: "inactive", RowIDs: []int{1}},
		}},
	})
	assert.Check(t, is.Contains(res.Text(), "Indexed columns in table 'users':"))

	run(t, eng, `CREATE plain (a)`)
	res = run(t, eng, `SHOW INDEXES plain`)
	assert.Equal(t, res.Text(), "No indexed columns in table plain.\n")
}

func TestExplain(t *testing.T) {
	eng := seeded(t)

	res := run(t, eng, `EXPLAIN SELECT FROM users WHERE status = "active" ORDER BY id`)
	assert.Equal(t, res.ScanType, "index")
	assert.Check(t, is.Contains(res.Plan, "SELECT users"))
	assert.Check(t, is.Contains(res.Plan, "SORT id ASC"))
	assert.Check(t, is.Contains(res.Plan, `INDEX_LOOKUP users.status = "active"`))
}

func TestCoreErrorsAreTyped(t *testing.T) {
	eng := seeded(t)
	ctx := context.Background()

	_, err := eng.Execute(ctx, &request.CreateTable{TableName: "users", Columns: []schema.Column{{Name: "x"}}})
	var dup *errors.DuplicateTableError
	assert.Assert(t, stderrors.As(err, &dup))

	_, err = eng.Execute(ctx, &request.Insert{TableName: "nope", Values: []string{"a"}})
	var unknown *errors.UnknownTableError
	assert.Assert(t, stderrors.As(err, &unknown))

	_, err = eng.Execute(ctx, &request.Insert{TableName: "users", Values: []string{"a"}})
	var mismatch *errors.ColumnCountMismatchError
	assert.Assert(t, stderrors.As(err, &mismatch))

	_, err = eng.Execute(ctx, &request.Select{
		TableName: "users",
		Predicate: &predicate.Predicate{Column: "age", Op: predicate.OpEqual, Operand: "1", OperandIsConstant: true},
	})
	var column *errors.UnknownColumnError
	assert.Assert(t, stderrors.As(err, &column))

	_, err = eng.Execute(ctx, &request.Select{TableName: "users", SortKeys: []plan.SortKey{{Column: "age"}}})
	assert.Assert(t, stderrors.As(err, &column))

	// Failed insert left the table alone
	res := run(t, eng, `SELECT FROM users`)
	assert.Equal(t, len(res.Rows), 3)
}

func TestParseErrorIsWrapped(t *testing.T) {
	eng := New(schema.NewCatalog())
	_, err := eng.ExecuteCommand(context.Background(), `SELECT users`)

	var syntax *parser.SyntaxError
	assert.Assert(t, stderrors.As(err, &syntax))
	assert.ErrorContains(t, err, "parse error:")
}

func TestExecuteCancelledContext(t *testing.T) {
	eng := New(schema.NewCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Execute(ctx, &request.CreateTable{TableName: "t", Columns: []schema.Column{{Name: "a"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(eng.Catalog().TableNames()), 0)
}

func TestEnginesShareCatalog(t *testing.T) {
	catalog := schema.NewCatalog()
	a := New(catalog)
	b := New(catalog)

	run(t, a, `CREATE shared (v)`, `INSERT shared ("x")`)
	res := run(t, b, `SELECT FROM shared`)
	assert.Equal(t, len(res.Rows), 1)
}
