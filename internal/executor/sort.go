package executor

import (
	"slices"
	"strings"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner/predicate"
)

// sortRows orders rows by keys, first key dominant.
// Keys are applied back to front, each pass a stable single-column sort, so
// earlier keys win and ties keep the order left by later keys.
func sortRows(rows []data.Row, keys []plan.SortKey) {
	for i := len(keys) - 1; i >= 0; i-- {
		sortByColumn(rows, keys[i])
	}
}

func sortByColumn(rows []data.Row, key plan.SortKey) {
	desc := key.Direction == plan.Desc
	slices.SortStableFunc(rows, func(a, b data.Row) int {
		av, _ := a.Get(key.Column)
		bv, _ := b.Get(key.Column)
		c := strings.Compare(predicate.Fold(av), predicate.Fold(bv))
		if desc {
			return -c
		}
		return c
	})
}
