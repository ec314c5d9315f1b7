package executor

import (
	"fmt"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner"
	"github.com/leengari/minidb/internal/planner/predicate"
)

// Result is the outcome of a selection
type Result struct {
	Columns []string
	Rows    []data.Row
	Plan    *plan.SelectNode
}

// ExecutionContext provides resources for execution
type ExecutionContext struct {
	Table *schema.Table
}

// Select plans and runs a selection on table.
// The returned rows must be treated as read-only.
func Select(table *schema.Table, pred *predicate.Predicate, keys []plan.SortKey) (*Result, error) {
	root, err := planner.Plan(table, pred, keys)
	if err != nil {
		return nil, err
	}

	rows, err := Execute(root, &ExecutionContext{Table: table})
	if err != nil {
		return nil, err
	}

	return &Result{
		Columns: table.ColumnNames(),
		Rows:    rows,
		Plan:    root,
	}, nil
}

// Execute walks the plan tree and returns the produced rows.
// The table read lock is held for the whole walk so the result reflects one state.
func Execute(root *plan.SelectNode, ctx *ExecutionContext) ([]data.Row, error) {
	ctx.Table.RLock()
	defer ctx.Table.RUnlock()

	return executeNode(root, ctx)
}

func executeNode(node plan.Node, ctx *ExecutionContext) ([]data.Row, error) {
	switch n := node.(type) {
	case *plan.SelectNode:
		children := n.Children()
		if len(children) != 1 {
			return nil, fmt.Errorf("select node must have exactly one child, got %d", len(children))
		}
		return executeNode(children[0], ctx)
	case *plan.SortNode:
		rows, err := executeNode(n.Child(), ctx)
		if err != nil {
			return nil, err
		}
		sortRows(rows, n.Keys)
		return rows, nil
	case *plan.IndexLookupNode:
		return executeIndexLookup(n, ctx)
	case *plan.ScanNode:
		return executeScan(n, ctx)
	default:
		return nil, fmt.Errorf("unsupported plan node: %T", node)
	}
}

// executeIndexLookup returns the rows of one index bucket in bucket order.
// A missing bucket yields no rows.
func executeIndexLookup(node *plan.IndexLookupNode, ctx *ExecutionContext) ([]data.Row, error) {
	idx, ok := ctx.Table.IndexUnsafe(node.Column)
	if !ok {
		return nil, fmt.Errorf("no index on %s.%s", node.TableName, node.Column)
	}

	ids, found := idx.Lookup(node.Value)
	if !found {
		return []data.Row{}, nil
	}

	rows := make([]data.Row, 0, len(ids))
	for _, id := range ids {
		row, ok := ctx.Table.RowUnsafe(id)
		if !ok {
			return nil, fmt.Errorf("index on %s.%s references missing row %d", node.TableName, node.Column, id)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// executeScan returns every row in row-id order, keeping only those matching the predicate
func executeScan(node *plan.ScanNode, ctx *ExecutionContext) ([]data.Row, error) {
	all := ctx.Table.RowsUnsafe()
	if node.Predicate == nil {
		return all, nil
	}

	rows := make([]data.Row, 0, len(all))
	for _, row := range all {
		ok, err := node.Predicate.Evaluate(row)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
