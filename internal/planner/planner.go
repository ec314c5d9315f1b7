package planner

import (
	"github.com/leengari/minidb/internal/domain/errors"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
)

// Plan builds the execution plan for a selection on table.
// The tree is SELECT -> [SORT ->] (INDEX_LOOKUP | SCAN).
// Every column named by the predicate or the sort keys must exist.
func Plan(table *schema.Table, pred *predicate.Predicate, keys []plan.SortKey) (*plan.SelectNode, error) {
	table.RLock()
	defer table.RUnlock()

	// 1. Validate columns before doing any work
	if pred != nil {
		if err := pred.Validate(table.Name, table.Header()); err != nil {
			return nil, err
		}
	}
	for _, key := range keys {
		if _, ok := table.Header().Position(key.Column); !ok {
			return nil, &errors.UnknownColumnError{Table: table.Name, Column: key.Column}
		}
	}

	// 2. Candidate source
	var source plan.Node
	scanType := selectScanType(table, pred)
	if scanType == ScanTypeIndex {
		source = &plan.IndexLookupNode{
			TableName: table.Name,
			Column:    pred.Column,
			Value:     pred.Operand,
		}
	} else {
		source = &plan.ScanNode{
			TableName: table.Name,
			Predicate: pred,
		}
	}
	source.Metadata()["scan_type"] = scanType
	attachCostEstimate(source, table)

	// 3. Optional sort on top of the source
	root := &plan.SelectNode{TableName: table.Name}
	root.Metadata()["has_predicate"] = pred != nil
	if len(keys) > 0 {
		sortNode := plan.NewSortNode(source, keys)
		sortNode.Metadata()["passes"] = len(keys)
		root.AddChild(sortNode)
	} else {
		root.AddChild(source)
	}

	return root, nil
}
