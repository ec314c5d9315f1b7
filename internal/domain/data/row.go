package data

import "encoding/json"

// Header is the ordered, immutable column-name table shared by a table and its rows
type Header struct {
	names     []string
	positions map[string]int
}

// NewHeader builds a header from column names in display order
func NewHeader(names []string) *Header {
	h := &Header{
		names:     make([]string, len(names)),
		positions: make(map[string]int, len(names)),
	}
	copy(h.names, names)
	for i, name := range names {
		h.positions[name] = i
	}
	return h
}

// Names returns a copy of the column names in display order
func (h *Header) Names() []string {
	names := make([]string, len(h.names))
	copy(names, h.names)
	return names
}

// Position returns the position of a column, or false if the header lacks it
func (h *Header) Position(name string) (int, bool) {
	pos, ok := h.positions[name]
	return pos, ok
}

func (h *Header) Len() int {
	return len(h.names)
}

// Row represents a single table row.
// Values are stored by column position and resolved by name through the shared Header.
type Row struct {
	ID     int
	header *Header
	values []string
}

// NewRow creates a row with the given identifier; values are copied
func NewRow(id int, header *Header, values []string) Row {
	v := make([]string, len(values))
	copy(v, values)
	return Row{
		ID:     id,
		header: header,
		values: v,
	}
}

// Get returns the value stored under column name
func (r Row) Get(column string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	pos, ok := r.header.Position(column)
	if !ok {
		return "", false
	}
	return r.values[pos], true
}

// At returns the value at column position i
func (r Row) At(i int) string {
	return r.values[i]
}

// Values returns a copy of the row values in column order
func (r Row) Values() []string {
	v := make([]string, len(r.values))
	copy(v, r.values)
	return v
}

func (r Row) Len() int {
	return len(r.values)
}

// Map returns the row as a column name → value map
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.header == nil {
		return m
	}
	for i, name := range r.header.names {
		m[name] = r.values[i]
	}
	return m
}

// MarshalJSON implements json.Marshaler interface
// This allows Row to be sent over the wire as a map
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
