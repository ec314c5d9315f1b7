package planner

import (
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/plan"
)

// estimateRowCount estimates the number of rows a leaf node will read.
// Index lookups read one bucket; scans read the whole table.
// Must be called while holding the table's read lock.
func estimateRowCount(node plan.Node, table *schema.Table) int {
	switch n := node.(type) {
	case *plan.IndexLookupNode:
		idx, ok := table.IndexUnsafe(n.Column)
		if !ok {
			return 0
		}
		ids, _ := idx.Lookup(n.Value)
		return len(ids)
	case *plan.ScanNode:
		return len(table.RowsUnsafe())
	default:
		return 0
	}
}

// attachCostEstimate attaches row-count metadata to a leaf node
func attachCostEstimate(node plan.Node, table *schema.Table) {
	node.Metadata()["estimated_rows"] = estimateRowCount(node, table)
}
