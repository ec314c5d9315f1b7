package planner

import (
	stderrors "errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/minidb/internal/domain/errors"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
	"github.com/leengari/minidb/internal/testutil"
)

func TestPlanUsesIndexForConstantEquality(t *testing.T) {
	table := testutil.CreateUsersTable(t)
	pred := &predicate.Predicate{Column: "status", Op: predicate.OpEqual, Operand: "active", OperandIsConstant: true}

	root, err := Plan(table, pred, nil)
	assert.NilError(t, err)

	leaf, ok := root.Children()[0].(*plan.IndexLookupNode)
	assert.Assert(t, ok, "expected index lookup, got %T", root.Children()[0])
	assert.Equal(t, leaf.Column, "status")
	assert.Equal(t, leaf.Value, "active")
	assert.Equal(t, leaf.Metadata()["scan_type"], ScanTypeIndex)
	assert.Equal(t, leaf.Metadata()["estimated_rows"], 2)
	assert.Equal(t, root.Metadata()["has_predicate"], true)
}

func TestPlanFallsBackToScan(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	tests := []struct {
		name string
		pred *predicate.Predicate
	}{
		{"no predicate", nil},
		{"unindexed column", &predicate.Predicate{Column: "name", Op: predicate.OpEqual, Operand: "bob", OperandIsConstant: true}},
		{"range on indexed column", &predicate.Predicate{Column: "status", Op: predicate.OpLess, Operand: "b", OperandIsConstant: true}},
		{"column operand", &predicate.Predicate{Column: "status", Op: predicate.OpEqual, Operand: "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Plan(table, tt.pred, nil)
			assert.NilError(t, err)

			leaf, ok := root.Children()[0].(*plan.ScanNode)
			assert.Assert(t, ok, "expected scan, got %T", root.Children()[0])
			assert.Equal(t, leaf.Predicate, tt.pred)
			assert.Equal(t, leaf.Metadata()["scan_type"], ScanTypeSequential)
			assert.Equal(t, leaf.Metadata()["estimated_rows"], 3)
		})
	}
}

func TestPlanWithSortKeys(t *testing.T) {
	table := testutil.CreateUsersTable(t)
	keys := []plan.SortKey{{Column: "status", Direction: plan.Asc}, {Column: "id", Direction: plan.Desc}}

	root, err := Plan(table, nil, keys)
	assert.NilError(t, err)

	sortNode, ok := root.Children()[0].(*plan.SortNode)
	assert.Assert(t, ok)
	assert.DeepEqual(t, sortNode.Keys, keys)
	assert.Equal(t, sortNode.Metadata()["passes"], 2)
	assert.Equal(t, plan.CountNodes(root), 3)
}

func TestPlanUnknownColumns(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	_, err := Plan(table, &predicate.Predicate{Column: "email", Op: predicate.OpEqual, Operand: "x", OperandIsConstant: true}, nil)
	var unknown *errors.UnknownColumnError
	assert.Assert(t, stderrors.As(err, &unknown))
	assert.Equal(t, unknown.Column, "email")

	_, err = Plan(table, nil, []plan.SortKey{{Column: "age"}})
	assert.Assert(t, stderrors.As(err, &unknown))
	assert.Equal(t, unknown.Column, "age")
	assert.Equal(t, unknown.Table, "users")
}
