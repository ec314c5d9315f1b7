package planner

import (
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/planner/predicate"
)

const (
	ScanTypeIndex      = "index"
	ScanTypeSequential = "sequential"
)

// shouldUseIndex reports whether the predicate can be answered from an index alone.
// Only constant equality on an indexed column qualifies: the bucket for the operand
// is then exactly the matching row set and needs no recheck.
// Must be called while holding the table's read lock.
func shouldUseIndex(table *schema.Table, pred *predicate.Predicate) bool {
	if pred == nil {
		return false
	}
	if pred.Op != predicate.OpEqual || !pred.OperandIsConstant {
		return false
	}
	_, ok := table.IndexUnsafe(pred.Column)
	return ok
}

// selectScanType determines whether to use index or sequential scan
func selectScanType(table *schema.Table, pred *predicate.Predicate) string {
	if shouldUseIndex(table, pred) {
		return ScanTypeIndex
	}
	return ScanTypeSequential
}
