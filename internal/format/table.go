// Package format renders query results as bordered text tables.
package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/leengari/minidb/internal/domain/data"
	"github.com/leengari/minidb/internal/domain/schema"
)

// Table renders columns and rows as an aligned, bordered table:
//
//	+----+-------+
//	| id | name  |
//	+----+-------+
//	| 1  | alice |
//	+----+-------+
//
// With no rows only the header block is drawn.
func Table(columns []string, rows []data.Row) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rows {
		for i, col := range columns {
			val, _ := row.Get(col)
			if w := utf8.RuneCountInString(val); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	separator := separatorLine(widths)

	b.WriteString(separator)
	writeLine(&b, columns, widths)
	b.WriteString(separator)
	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i], _ = row.Get(col)
		}
		writeLine(&b, cells, widths)
	}
	b.WriteString(separator)

	return b.String()
}

// WriteTable writes the rendered table to w
func WriteTable(w io.Writer, columns []string, rows []data.Row) error {
	_, err := io.WriteString(w, Table(columns, rows))
	return err
}

func separatorLine(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for i, cell := range cells {
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

// Indexes renders the SHOW INDEXES listing for a table
func Indexes(table string, views []schema.IndexView) string {
	if len(views) == 0 {
		return fmt.Sprintf("No indexed columns in table %s.\n", table)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Indexed columns in table '%s':\n", table)
	for _, view := range views {
		buckets := make([]string, len(view.Buckets))
		for i, bucket := range view.Buckets {
			buckets[i] = fmt.Sprintf("%q: %v", bucket.Value, bucket.RowIDs)
		}
		fmt.Fprintf(&b, "  - %s: {%s}\n", view.Column, strings.Join(buckets, ", "))
	}
	return b.String()
}
