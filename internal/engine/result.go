package engine

import (
	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/format"
	"github.com/leengari/minidb/internal/request"
)

// Result is the outcome of one request
type Result struct {
	Kind     request.Kind       `json:"kind"`
	Table    string             `json:"table"`
	Message  string             `json:"message,omitempty"`
	Columns  []string           `json:"columns,omitempty"`
	Rows     []data.Row         `json:"rows,omitempty"`
	RowID    *int               `json:"row_id,omitempty"` // set for inserts only
	Indexes  []schema.IndexView `json:"indexes,omitempty"`
	Plan     string             `json:"plan,omitempty"`
	ScanType string             `json:"scan_type,omitempty"`
}

// Text renders the result the way the REPL prints it
func (r *Result) Text() string {
	switch r.Kind {
	case request.KindSelect:
		return format.Table(r.Columns, r.Rows)
	case request.KindShowIndexes:
		return format.Indexes(r.Table, r.Indexes)
	case request.KindExplain:
		return r.Plan
	default:
		if r.Message == "" {
			return ""
		}
		return r.Message + "\n"
	}
}
